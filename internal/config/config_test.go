package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "NLH", cfg.Table.Variant)
	assert.Equal(t, 6, cfg.Table.MaxPlayers)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
table {
  variant     = "RAZZ"
  small_blind = 5
  big_blind   = 30
  ante        = 2
  structure   = "fixed-limit"
  seed        = 99
}

log {
  level = "debug"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "RAZZ", cfg.Table.Variant)
	assert.Equal(t, 5, cfg.Table.SmallBlind)
	assert.Equal(t, 30, cfg.Table.BigBlind)
	assert.Equal(t, 2, cfg.Table.Ante)
	assert.Equal(t, "fixed-limit", cfg.Table.Structure)
	assert.Equal(t, int64(99), cfg.Table.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset fields keep their defaults.
	assert.Equal(t, 6, cfg.Table.MaxPlayers)
	assert.Equal(t, 2000, cfg.Table.StartingStack)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `table { variant = `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Table.Structure = "pot-limit"
	cfg.Table.Seed = 7

	ec := cfg.EngineConfig()
	assert.Equal(t, 6, ec.MaxPlayers)
	assert.Equal(t, 10, ec.SmallBlind)
	assert.Equal(t, 20, ec.BigBlind)
	assert.Equal(t, "pot-limit", ec.Structure)
	assert.Equal(t, int64(7), ec.Seed)
}

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimConfigMergesFlagsOverFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
table {
  variant        = "PLO"
  big_blind      = 50
  small_blind    = 25
  starting_stack = 5000
  seed           = 11
}
`), 0o644))

	cli := &CLI{Config: path}
	cfg, err := simConfig(cli, TableOverrides{Variant: "RAZZ", Players: 4, Seed: 99}, 10, 0, log.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, "RAZZ", cfg.Variant, "flag beats file")
	assert.Equal(t, 4, cfg.Players)
	assert.Equal(t, 10, cfg.Hands)
	assert.Equal(t, 5000, cfg.Stack, "file beats default")
	assert.Equal(t, 50, cfg.Engine.BigBlind)
	assert.Equal(t, int64(99), cfg.Engine.Seed)
}

func TestSimConfigDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := simConfig(&CLI{}, TableOverrides{Players: 3}, 5, 0, log.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, "NLH", cfg.Variant)
	assert.Equal(t, 2000, cfg.Stack)
	assert.Equal(t, 20, cfg.Engine.BigBlind)
	assert.NotZero(t, cfg.Engine.Seed, "unseeded runs get a time-based seed")
}

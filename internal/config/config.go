// Package config loads table configuration from HCL files. A missing
// file yields the defaults so every command runs without one.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerengine/internal/engine"
)

// Config is the full configuration file.
type Config struct {
	Table *TableBlock `hcl:"table,block"`
	Log   *LogBlock   `hcl:"log,block"`
}

// TableBlock configures the game a command runs.
type TableBlock struct {
	Variant       string `hcl:"variant,optional"`
	MaxPlayers    int    `hcl:"max_players,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	Ante          int    `hcl:"ante,optional"`
	Structure     string `hcl:"structure,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// LogBlock configures logging.
type LogBlock struct {
	Level string `hcl:"level,optional"`
}

// Default returns the configuration used when no file is present: a
// six-max no-limit hold'em table at 10/20.
func Default() *Config {
	return &Config{
		Table: &TableBlock{
			Variant:       "NLH",
			MaxPlayers:    6,
			SmallBlind:    10,
			BigBlind:      20,
			StartingStack: 2000,
		},
		Log: &LogBlock{Level: "info"},
	}
}

// Load reads an HCL configuration file and fills gaps from the defaults.
// An empty path or a missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}

	var loaded Config
	if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", path, diags.Error())
	}

	if loaded.Table != nil {
		merge(&cfg.Table.Variant, loaded.Table.Variant)
		mergeInt(&cfg.Table.MaxPlayers, loaded.Table.MaxPlayers)
		mergeInt(&cfg.Table.SmallBlind, loaded.Table.SmallBlind)
		mergeInt(&cfg.Table.BigBlind, loaded.Table.BigBlind)
		mergeInt(&cfg.Table.Ante, loaded.Table.Ante)
		merge(&cfg.Table.Structure, loaded.Table.Structure)
		mergeInt(&cfg.Table.StartingStack, loaded.Table.StartingStack)
		if loaded.Table.Seed != 0 {
			cfg.Table.Seed = loaded.Table.Seed
		}
	}
	if loaded.Log != nil {
		merge(&cfg.Log.Level, loaded.Log.Level)
	}
	return cfg, nil
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// EngineConfig converts the table block to an engine configuration.
func (c *Config) EngineConfig() engine.Config {
	t := c.Table
	return engine.Config{
		MaxPlayers: t.MaxPlayers,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		Ante:       t.Ante,
		Structure:  t.Structure,
		Seed:       t.Seed,
	}
}

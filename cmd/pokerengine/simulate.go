package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/internal/history"
	"github.com/lox/pokerengine/internal/simulator"
)

// SimulateCmd plays hands between scripted players and prints a summary.
type SimulateCmd struct {
	TableOverrides
	Hands  int    `default:"100" help:"Number of hands to play"`
	Output string `short:"o" type:"path" help:"Write the hand history to a POKR snapshot file"`
	PHH    string `name:"phh" type:"path" help:"Write one .phh file per hand into this directory"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.LogLevel)

	cfg, err := simConfig(cli, c.TableOverrides, c.Hands, 0, logger)
	if err != nil {
		return err
	}
	sim, err := simulator.New(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting simulation",
		"variant", cfg.Variant,
		"hands", cfg.Hands,
		"players", cfg.Players,
		"seed", cfg.Engine.Seed)

	ctx := signalContext(logger)
	results, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(results.Summary())

	records := sim.Game().History().Records()
	if c.Output != "" {
		if err := history.NewStore(c.Output, nil).Save(records); err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
		logger.Info("wrote hand history", "path", c.Output, "hands", len(records))
	}
	if c.PHH != "" {
		if err := writePHH(c.PHH, records); err != nil {
			return err
		}
		logger.Info("wrote PHH files", "dir", c.PHH, "hands", len(records))
	}
	return nil
}

func writePHH(dir string, records []*engine.HandRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, r := range records {
		path := filepath.Join(dir, fmt.Sprintf("hand-%d.phh", r.ID))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = history.EncodePHH(f, history.FromRecord(r))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

package main

import (
	"os"
	"runtime"
	"time"

	"github.com/lox/pokerengine/internal/tablegen"
)

// GenTablesCmd builds the perfect-hash lookup table for five-card
// evaluation and writes it to disk.
type GenTablesCmd struct {
	Output  string `short:"o" default:"evaluator.tbl" type:"path" help:"Output file"`
	Workers int    `help:"Worker goroutines (default GOMAXPROCS)"`
}

func (c *GenTablesCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.LogLevel)

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	table, err := tablegen.Build(logger, workers)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	n, err := table.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.Info("wrote evaluator table",
		"path", c.Output,
		"bytes", n,
		"multiplier", table.K,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

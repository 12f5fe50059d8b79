package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerengine/internal/config"
	"github.com/lox/pokerengine/internal/simulator"
)

func setupLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	return ctx
}

// TableOverrides are the flags shared by every command that runs a table.
// Zero values defer to the configuration file.
type TableOverrides struct {
	Variant string `short:"V" help:"Variant code (NLH, PLO, 7CS, RAZZ, 5CD, 27TD, BDG)"`
	Players int    `default:"3" help:"Number of seated players"`
	Stack   int    `help:"Starting stack (default from config)"`
	Seed    int64  `help:"Deterministic RNG seed (default from config)"`
}

// simConfig merges the configuration file with command-line overrides.
func simConfig(cli *CLI, o TableOverrides, hands int, delay time.Duration, logger *log.Logger) (simulator.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return simulator.Config{}, err
	}
	if o.Variant != "" {
		cfg.Table.Variant = o.Variant
	}
	if o.Stack != 0 {
		cfg.Table.StartingStack = o.Stack
	}
	if o.Seed != 0 {
		cfg.Table.Seed = o.Seed
	}
	if cfg.Table.Seed == 0 {
		cfg.Table.Seed = time.Now().UnixNano()
	}
	return simulator.Config{
		Variant: cfg.Table.Variant,
		Hands:   hands,
		Players: o.Players,
		Stack:   cfg.Table.StartingStack,
		Delay:   delay,
		Engine:  cfg.EngineConfig(),
		Logger:  logger,
	}, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

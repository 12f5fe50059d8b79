package main

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerengine/internal/server"
	"github.com/lox/pokerengine/internal/simulator"
)

// ServeCmd runs a simulated table and streams its events to websocket
// spectators.
type ServeCmd struct {
	TableOverrides
	Addr  string        `default:":8080" help:"Listen address"`
	Hands int           `default:"1000" help:"Hands to play before stopping"`
	Delay time.Duration `default:"500ms" help:"Pause between actions"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.LogLevel)

	broadcaster := server.NewBroadcaster(c.Addr, logger)
	cfg, err := simConfig(cli, c.TableOverrides, c.Hands, c.Delay, logger)
	if err != nil {
		return err
	}
	sim, err := simulator.New(cfg, broadcaster)
	if err != nil {
		return err
	}

	logger.Info("serving table",
		"addr", c.Addr,
		"variant", cfg.Variant,
		"players", cfg.Players,
		"seed", cfg.Engine.Seed)

	ctx, cancel := context.WithCancel(signalContext(logger))
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return broadcaster.Serve(ctx)
	})
	g.Go(func() error {
		defer cancel()
		_, err := sim.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokerengine/internal/simulator"
	"github.com/lox/pokerengine/internal/tui"
)

// WatchCmd runs a simulated table and renders it live in the terminal.
type WatchCmd struct {
	TableOverrides
	Hands int           `default:"100" help:"Hands to play before stopping"`
	Delay time.Duration `default:"600ms" help:"Pause between actions"`
}

func (c *WatchCmd) Run(cli *CLI) error {
	// Logging would fight the terminal UI for the screen.
	logger := discardLogger()

	viewer := tui.NewViewer(logger)
	cfg, err := simConfig(cli, c.TableOverrides, c.Hands, c.Delay, logger)
	if err != nil {
		return err
	}
	sim, err := simulator.New(cfg, viewer)
	if err != nil {
		return err
	}

	program := tea.NewProgram(viewer, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := sim.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		done <- err
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return err
	}
	cancel()
	return <-done
}

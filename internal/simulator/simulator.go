// Package simulator plays automated hands on a table. The players follow
// a simple mixed policy (mostly passive, occasionally aggressive), which
// is enough to exercise every street, draw phase and showdown path. Used
// by the simulate, serve and watch commands.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/internal/variant"
)

// Config configures a simulation run.
type Config struct {
	Variant string
	Hands   int
	Players int
	Stack   int
	Delay   time.Duration // pause between actions, for live viewing
	Engine  engine.Config
	Logger  *log.Logger
}

// Simulator owns a game and the scripted players seated at it.
type Simulator struct {
	cfg    Config
	game   *engine.Game
	rng    *rand.Rand
	logger *log.Logger
}

// New creates the game, seats the players and returns a simulator ready
// to run. Extra observers (websocket broadcaster, terminal viewer) attach
// to the underlying game.
func New(cfg Config, observers ...engine.Observer) (*Simulator, error) {
	if cfg.Players < 2 || cfg.Players > cfg.Engine.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players at a %d-max table",
			engine.ErrInvalidArgument, cfg.Players, cfg.Engine.MaxPlayers)
	}
	v, err := variant.New(cfg.Variant)
	if err != nil {
		return nil, err
	}

	opts := make([]engine.Option, 0, len(observers))
	for _, o := range observers {
		opts = append(opts, engine.WithObserver(o))
	}
	g, err := engine.New(v, cfg.Engine, cfg.Logger, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < cfg.Players; i++ {
		if err := g.Seat(i, fmt.Sprintf("player-%d", i+1), cfg.Stack); err != nil {
			return nil, err
		}
	}

	return &Simulator{
		cfg:    cfg,
		game:   g,
		rng:    randutil.New(cfg.Engine.Seed),
		logger: cfg.Logger.WithPrefix("simulator"),
	}, nil
}

// Game exposes the underlying game, mainly so callers can read its
// history after a run.
func (s *Simulator) Game() *engine.Game { return s.game }

// Run plays the configured number of hands. Busted players are topped
// back up to the starting stack between hands so the table never goes
// short-handed.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	results := &Results{NetBySeat: make(map[int]int)}
	for i := 0; i < s.cfg.Hands; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		before := s.stacks()
		if err := s.playHand(ctx); err != nil {
			return results, fmt.Errorf("hand %d: %w", i+1, err)
		}
		results.observe(s.game, before)
		s.rebuy()
	}
	return results, nil
}

func (s *Simulator) playHand(ctx context.Context) error {
	if err := s.game.StartHand(); err != nil {
		return err
	}
	for s.game.InHand() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(); err != nil {
			return err
		}
		if s.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.Delay):
			}
		}
	}
	return nil
}

// step makes one action or draw for the seat the game is waiting on. The
// policy proposes actions in preference order and the first legal one
// wins, so the simulator never needs to reimplement the betting rules.
func (s *Simulator) step() error {
	seat := s.game.ActionOn()
	if s.game.Phase() == engine.PhaseDrawing {
		return s.game.Draw(seat, s.discards(seat))
	}
	for _, c := range s.candidates(seat) {
		err := s.game.Act(seat, c.action, c.amount)
		if err == nil {
			return nil
		}
		if !errors.Is(err, engine.ErrInvalidAction) {
			return err
		}
	}
	return fmt.Errorf("%w: no playable action for seat %d", engine.ErrInvalidState, seat)
}

type candidate struct {
	action engine.Action
	amount int
}

func (s *Simulator) candidates(seat int) []candidate {
	b := s.game.Betting()
	p, err := s.game.PlayerAt(seat)
	if err != nil {
		return nil
	}
	toCall := b.CurrentBet - p.Bet

	var preferred []candidate
	switch roll := s.rng.IntN(10); {
	case toCall == 0 && roll < 7:
		preferred = append(preferred, candidate{action: engine.Check})
	case toCall == 0:
		preferred = append(preferred, candidate{engine.Bet, s.game.MinOpenBet()})
	case roll < 6:
		preferred = append(preferred, candidate{action: engine.Call})
	case roll < 8:
		preferred = append(preferred, candidate{engine.Raise, b.CurrentBet + b.MinRaise})
	default:
		preferred = append(preferred, candidate{action: engine.Fold})
	}

	// Legal fallbacks so the hand always progresses.
	return append(preferred,
		candidate{action: engine.Call},
		candidate{action: engine.Check},
		candidate{engine.AllInAction, s.game.MaxBetTo(seat)},
		candidate{action: engine.Fold},
	)
}

// discards keeps roughly half the hand on average.
func (s *Simulator) discards(seat int) []int {
	p, err := s.game.PlayerAt(seat)
	if err != nil {
		return nil
	}
	var idx []int
	for i := range p.Cards() {
		if s.rng.IntN(3) == 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func (s *Simulator) stacks() []int {
	out := make([]int, len(s.game.Players()))
	for seat, p := range s.game.Players() {
		out[seat] = p.Stack
	}
	return out
}

func (s *Simulator) rebuy() {
	for seat, p := range s.game.Players() {
		if p.Occupied() && p.Stack == 0 {
			p.Stack = s.cfg.Stack
			s.logger.Debug("rebuy", "seat", seat, "stack", p.Stack)
		}
	}
}

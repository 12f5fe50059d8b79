// Package variant implements the supported poker variants on top of the
// engine's Variant interface: Texas Hold'em, Omaha, seven-card stud, razz,
// and the draw games. Each variant supplies only what differs from the
// canonical betting semantics in the engine.
package variant

import (
	"fmt"

	"github.com/lox/pokerengine/internal/engine"
)

// base provides the variant-neutral defaults. Concrete variants embed it
// and override the hooks their family needs.
type base struct{}

func (base) Init(*engine.Game)    {}
func (base) Cleanup(*engine.Game) {}

func (base) ValidateAction(g *engine.Game, seat int, action engine.Action, amount int) error {
	return g.ValidateActionDefault(seat, action, amount)
}

func (base) ApplyAction(g *engine.Game, seat int, action engine.Action, amount int) error {
	return g.ApplyActionDefault(seat, action, amount)
}

func (base) BettingComplete(g *engine.Game) bool {
	return g.BettingCompleteDefault()
}

func (base) EndBettingRound(g *engine.Game) error {
	return g.EndBettingRoundDefault()
}

func (base) MaxDraws(*engine.Game, int) int { return 0 }

func (base) ApplyDraw(g *engine.Game, seat int, indexes []int) error {
	return fmt.Errorf("%w: variant has no draw phase", engine.ErrInvalidAction)
}

func (base) BringIn(*engine.Game) int { return -1 }

func (base) CardFaceUp(*engine.Game, int, int) bool { return false }

// dealAround deals n cards to every in-hand seat, one at a time clockwise
// from the seat after the button.
func dealAround(g *engine.Game, n int, faceUp func(pass int) bool) error {
	for pass := 0; pass < n; pass++ {
		up := false
		if faceUp != nil {
			up = faceUp(pass)
		}
		start := g.NextInHandSeat(g.Button())
		if start == -1 {
			return fmt.Errorf("%w: no seats to deal to", engine.ErrInvalidState)
		}
		for seat := start; ; {
			if err := g.DealTo(seat, up); err != nil {
				return err
			}
			seat = g.NextInHandSeat(seat)
			if seat == start {
				break
			}
		}
	}
	return nil
}

// blindSeats returns the small and big blind seats for the current hand.
// Heads up the button posts the small blind.
func blindSeats(g *engine.Game) (sb, bb int) {
	if g.CountInHand() == 2 {
		sb = g.Button()
	} else {
		sb = g.NextInHandSeat(g.Button())
	}
	bb = g.NextInHandSeat(sb)
	return sb, bb
}

// postBlinds opens the first betting round of a blind game: antes, small
// and big blind, action to the seat after the big blind.
func postBlinds(g *engine.Game, fixedBet int) {
	cfg := g.Config()
	for _, p := range g.Players() {
		if p.InHand() && cfg.Ante > 0 {
			g.PostAnte(p.Seat, cfg.Ante)
		}
	}
	b := g.Betting()
	b.Reset(cfg.BigBlind, fixedBet)
	sb, bb := blindSeats(g)
	g.PostForcedBet(sb, "small-blind", cfg.SmallBlind)
	g.PostForcedBet(bb, "big-blind", cfg.BigBlind)
	b.CurrentBet = cfg.BigBlind
	g.SetActionOn(g.NextActiveSeat(bb))
}

// startLaterRound opens a post-deal betting round of a blind game: no
// forced bets, action to the first active seat after the button.
func startLaterRound(g *engine.Game, fixedBet int) {
	g.Betting().Reset(g.Config().BigBlind, fixedBet)
	g.SetActionOn(g.NextActiveSeat(g.Button()))
}

// blindFirstToAct is the opener for blind games: after the big blind
// preflop, after the button on later rounds.
func blindFirstToAct(g *engine.Game, round int) int {
	if round > 0 {
		return g.NextActiveSeat(g.Button())
	}
	_, bb := blindSeats(g)
	return g.NextActiveSeat(bb)
}

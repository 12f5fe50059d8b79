package variant

import (
	"fmt"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/poker"
)

// draw covers the blind draw games: deal a full hand face down, then
// alternate exchange phases and betting rounds. The concrete games differ
// only in hand size, draw count, structure and hand ordering.
type draw struct {
	base
	name      string
	code      string
	structure engine.Structure
	handSize  int
	numDraws  int

	compare  func(a, b []poker.Card) int
	describe func(cards []poker.Card) string
}

// NewFiveCardDraw returns five-card draw: one exchange, high hands win.
func NewFiveCardDraw() engine.Variant {
	return &draw{
		name: "Five-Card Draw", code: "5CD",
		structure: engine.NoLimit, handSize: 5, numDraws: 1,
		compare: func(a, b []poker.Card) int {
			return poker.Evaluate5(a).Compare(poker.Evaluate5(b))
		},
		describe: func(cards []poker.Card) string {
			return poker.Evaluate5(cards).String()
		},
	}
}

// NewTripleDraw returns deuce-to-seven triple draw: three exchanges, the
// worst high hand wins, aces high, straights and flushes count against.
func NewTripleDraw() engine.Variant {
	return &draw{
		name: "Deuce-to-Seven Triple Draw", code: "27TD",
		structure: engine.FixedLimit, handSize: 5, numDraws: 3,
		compare: func(a, b []poker.Card) int {
			return poker.EvaluateDeuceToSevenLow(a).Compare(poker.EvaluateDeuceToSevenLow(b))
		},
		describe: func(cards []poker.Card) string {
			return deuceToSevenString(poker.EvaluateDeuceToSevenLow(cards))
		},
	}
}

// NewBadugi returns badugi: four cards, three exchanges, rewarding four
// distinct low ranks in four distinct suits.
func NewBadugi() engine.Variant {
	return &draw{
		name: "Badugi", code: "BDG",
		structure: engine.FixedLimit, handSize: 4, numDraws: 3,
		compare: func(a, b []poker.Card) int {
			return poker.EvaluateBadugi(a).Compare(poker.EvaluateBadugi(b))
		},
		describe: func(cards []poker.Card) string {
			return badugiString(poker.EvaluateBadugi(cards))
		},
	}
}

func (d *draw) Name() string                       { return d.name }
func (d *draw) Code() string                       { return d.code }
func (d *draw) DefaultStructure() engine.Structure { return d.structure }

func (*draw) StartHand(g *engine.Game) error {
	g.ResetDeckForHand()
	return nil
}

func (d *draw) DealInitial(g *engine.Game) error {
	return dealAround(g, d.handSize, nil)
}

// DealStreet opens an exchange phase; actual dealing happens per seat in
// ApplyDraw.
func (d *draw) DealStreet(g *engine.Game, round int) error {
	if round <= d.numDraws {
		g.BeginDrawPhase()
	}
	return nil
}

func (d *draw) DealingComplete(g *engine.Game) bool {
	return g.Round() >= d.numDraws
}

func (d *draw) RoundName(round int) string {
	if round == 0 {
		return "predraw"
	}
	return fmt.Sprintf("draw-%d", round)
}

// drawFixedBet doubles for the rounds after the second exchange.
func (d *draw) drawFixedBet(g *engine.Game, round int) int {
	if g.Structure() != engine.FixedLimit {
		return 0
	}
	if round >= 2 {
		return 2 * g.Config().BigBlind
	}
	return g.Config().BigBlind
}

func (d *draw) StartBettingRound(g *engine.Game, round int) error {
	if round == 0 {
		postBlinds(g, d.drawFixedBet(g, round))
	} else {
		startLaterRound(g, d.drawFixedBet(g, round))
	}
	return nil
}

func (*draw) FirstToAct(g *engine.Game, round int) int {
	return blindFirstToAct(g, round)
}

func (d *draw) MaxDraws(*engine.Game, int) int { return d.handSize }

func (*draw) ApplyDraw(g *engine.Game, seat int, indexes []int) error {
	return g.ReplaceCards(seat, indexes)
}

func (d *draw) DescribeHand(g *engine.Game, seat int) string {
	p, _ := g.PlayerAt(seat)
	return d.describe(p.Cards())
}

func (d *draw) CompareHands(g *engine.Game, a, b int) int {
	pa, _ := g.PlayerAt(a)
	pb, _ := g.PlayerAt(b)
	return d.compare(pa.Cards(), pb.Cards())
}

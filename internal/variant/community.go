package variant

import (
	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/poker"
)

var communityRounds = [...]string{"preflop", "flop", "turn", "river"}

// community carries the board-dealing schedule shared by Hold'em and
// Omaha: blinds, a flop, a turn and a river with burns before each.
type community struct {
	base
}

func (community) StartHand(g *engine.Game) error {
	g.ResetDeckForHand()
	return nil
}

func (community) DealStreet(g *engine.Game, round int) error {
	switch round {
	case 1:
		return g.DealBoard(3, true)
	case 2, 3:
		return g.DealBoard(1, true)
	}
	return nil
}

func (community) DealingComplete(g *engine.Game) bool {
	return g.Round() >= 3
}

func (community) RoundName(round int) string {
	return communityRounds[round]
}

func (c community) StartBettingRound(g *engine.Game, round int) error {
	if round == 0 {
		postBlinds(g, 0)
	} else {
		startLaterRound(g, 0)
	}
	return nil
}

func (community) FirstToAct(g *engine.Game, round int) int {
	return blindFirstToAct(g, round)
}

// Holdem is Texas Hold'em: two hole cards, any five of seven play.
type Holdem struct {
	community
}

// NewHoldem returns the Hold'em variant.
func NewHoldem() *Holdem { return &Holdem{} }

func (*Holdem) Name() string                       { return "Texas Hold'em" }
func (*Holdem) Code() string                       { return "NLH" }
func (*Holdem) DefaultStructure() engine.Structure { return engine.NoLimit }

func (*Holdem) DealInitial(g *engine.Game) error {
	return dealAround(g, 2, nil)
}

func holdemScore(g *engine.Game, seat int) poker.Score {
	p, _ := g.PlayerAt(seat)
	cards := make([]poker.Card, 0, 7)
	cards = append(cards, p.Cards()...)
	cards = append(cards, g.Board()...)
	return poker.EvaluateBest(cards)
}

func (*Holdem) DescribeHand(g *engine.Game, seat int) string {
	return holdemScore(g, seat).String()
}

func (*Holdem) CompareHands(g *engine.Game, a, b int) int {
	return holdemScore(g, a).Compare(holdemScore(g, b))
}

// Omaha deals four hole cards and requires exactly two of them plus three
// board cards, which is what makes it a different game from Hold'em rather
// than a bigger one.
type Omaha struct {
	community
}

// NewOmaha returns the pot-limit Omaha variant.
func NewOmaha() *Omaha { return &Omaha{} }

func (*Omaha) Name() string                       { return "Omaha" }
func (*Omaha) Code() string                       { return "PLO" }
func (*Omaha) DefaultStructure() engine.Structure { return engine.PotLimit }

func (*Omaha) DealInitial(g *engine.Game) error {
	return dealAround(g, 4, nil)
}

func omahaScore(g *engine.Game, seat int) poker.Score {
	p, _ := g.PlayerAt(seat)
	hole := p.Cards()
	board := g.Board()
	var best poker.Score
	var five [5]poker.Card
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			five[0], five[1] = hole[i], hole[j]
			for a := 0; a < len(board); a++ {
				for b := a + 1; b < len(board); b++ {
					for c := b + 1; c < len(board); c++ {
						five[2], five[3], five[4] = board[a], board[b], board[c]
						if s := poker.Evaluate5(five[:]); s > best {
							best = s
						}
					}
				}
			}
		}
	}
	return best
}

func (*Omaha) DescribeHand(g *engine.Game, seat int) string {
	return omahaScore(g, seat).String()
}

func (*Omaha) CompareHands(g *engine.Game, a, b int) int {
	return omahaScore(g, a).Compare(omahaScore(g, b))
}

package engine

import "github.com/lox/pokerengine/poker"

// Variant is the capability bundle a poker variant supplies to the engine.
// The engine drives every hand through these operations and never branches
// on the concrete game, so adding a variant means implementing this
// interface and nothing else.
//
// Implementations embed variant-neutral defaults for the operations that
// do not apply to their family (stud hooks for community games, draw hooks
// for stud), so the engine calls every operation unconditionally.
type Variant interface {
	// Name is the display name; Code is the stable short identifier used
	// in logs and hand histories (NLH, PLO, 7CS, RAZZ, 5CD, 27TD, BDG).
	Name() string
	Code() string

	// DefaultStructure is the betting structure used when the table
	// configuration does not specify one.
	DefaultStructure() Structure

	// Init allocates per-hand variant scratch on the game; Cleanup
	// releases it. The engine owns the scratch and drops it at hand end.
	Init(g *Game)
	Cleanup(g *Game)

	// StartHand resets scratch and the deck for a new hand.
	StartHand(g *Game) error

	// DealInitial deals every active seat its starting cards, clockwise
	// from the seat after the button.
	DealInitial(g *Game) error

	// DealStreet advances dealing for the given round: community cards,
	// stud street cards, or opening a draw exchange phase.
	DealStreet(g *Game, round int) error

	// DealingComplete reports that no more cards will be dealt this hand.
	DealingComplete(g *Game) bool

	// RoundName labels a betting round for logs and histories.
	RoundName(round int) string

	// StartBettingRound posts forced bets for the round, resets per-round
	// bet state, and points the action at the first seat to act.
	StartBettingRound(g *Game, round int) error

	// BettingComplete reports that no seat may act further this round.
	BettingComplete(g *Game) bool

	// EndBettingRound folds the round's bets into the pot accounting.
	EndBettingRound(g *Game) error

	// ValidateAction is a pure predicate over the canonical action table;
	// ApplyAction mutates the player and betting state and must only be
	// called with a validated action.
	ValidateAction(g *Game, seat int, action Action, amount int) error
	ApplyAction(g *Game, seat int, action Action, amount int) error

	// FirstToAct returns the seat that opens the given betting round.
	FirstToAct(g *Game, round int) int

	// DescribeHand renders a seat's best hand for display and history;
	// CompareHands is the authoritative ordering used to award pots and
	// returns the usual negative/zero/positive sign.
	DescribeHand(g *Game, seat int) string
	CompareHands(g *Game, a, b int) int

	// MaxDraws returns how many cards the seat may exchange in the
	// current draw phase (zero for non-draw variants); ApplyDraw replaces
	// the cards at the given hand indexes from the top of the deck.
	MaxDraws(g *Game, seat int) int
	ApplyDraw(g *Game, seat int, indexes []int) error

	// BringIn returns the seat forced to open third street in stud
	// games, or -1 where the concept does not apply.
	BringIn(g *Game) int

	// CardFaceUp reports whether a seat's card at idx is exposed.
	CardFaceUp(g *Game, seat, idx int) bool
}

// HiLoVariant is implemented additionally by split-pot variants. Each pot
// is then divided between the best high hand and the best qualifying low;
// with no qualifying low the high hand takes the whole pot.
type HiLoVariant interface {
	LowHand(g *Game, seat int) (low poker.LowScore, qualifies bool)
}

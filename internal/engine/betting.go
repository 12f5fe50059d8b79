package engine

import "fmt"

// Action is a betting-round action.
type Action uint8

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllInAction
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "all-in"}[a]
}

// Structure selects how bet and raise sizes are validated.
type Structure uint8

const (
	NoLimit Structure = iota
	PotLimit
	FixedLimit
)

func (s Structure) String() string {
	return [...]string{"no-limit", "pot-limit", "fixed-limit"}[s]
}

// ParseStructure parses the configuration spelling of a betting structure.
func ParseStructure(s string) (Structure, error) {
	switch s {
	case "no-limit", "":
		return NoLimit, nil
	case "pot-limit":
		return PotLimit, nil
	case "fixed-limit":
		return FixedLimit, nil
	default:
		return 0, fmt.Errorf("%w: unknown betting structure %q", ErrInvalidArgument, s)
	}
}

// BettingState is the mutable state of one betting round. The acted flags
// are cleared only by a full raise, which is what makes the
// short-all-in-does-not-reopen rule fall out naturally: a seat whose flag
// is still set has already acted since the last full raise and may no
// longer raise, only call or fold.
type BettingState struct {
	CurrentBet    int
	MinRaise      int
	FixedBet      int // bet unit for fixed-limit rounds
	LastAggressor int // seat of the last bettor or full raiser, -1 if none
	acted         []bool
}

func newBettingState(numSeats int) BettingState {
	return BettingState{LastAggressor: -1, acted: make([]bool, numSeats)}
}

// Reset prepares the state for a new betting round.
func (b *BettingState) Reset(minRaise, fixedBet int) {
	b.CurrentBet = 0
	b.MinRaise = minRaise
	b.FixedBet = fixedBet
	b.LastAggressor = -1
	for i := range b.acted {
		b.acted[i] = false
	}
}

// MarkActed records that a seat has acted since the last full raise.
func (b *BettingState) MarkActed(seat int) {
	b.acted[seat] = true
}

// HasActed reports whether a seat has acted since the last full raise.
func (b *BettingState) HasActed(seat int) bool {
	return b.acted[seat]
}

// Reopen clears every acted flag except the aggressor's. Called on bets
// and full raises.
func (b *BettingState) Reopen(aggressor int) {
	for i := range b.acted {
		b.acted[i] = false
	}
	b.acted[aggressor] = true
	b.LastAggressor = aggressor
}

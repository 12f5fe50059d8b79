package engine_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/internal/variant"
	"github.com/lox/pokerengine/poker"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newGame(t *testing.T, v engine.Variant, cfg engine.Config, opts ...engine.Option) *engine.Game {
	t.Helper()
	g, err := engine.New(v, cfg, testLogger(), opts...)
	require.NoError(t, err)
	return g
}

func stackedDeck(spec string) *poker.Deck {
	d := poker.NewDeck(nil)
	d.Stack(poker.MustParseCards(spec))
	return d
}

func seatAll(t *testing.T, g *engine.Game, stacks ...int) {
	t.Helper()
	names := []string{"alice", "bob", "carol", "dave", "erin", "frank"}
	for i, stack := range stacks {
		require.NoError(t, g.Seat(i, names[i], stack))
	}
}

func stackSum(g *engine.Game) int {
	total := 0
	for _, p := range g.Players() {
		total += p.Stack
	}
	return total
}

// Three-handed hold'em played to showdown. Seat 0 makes aces full, seat 1
// a worse hand, seat 2 folds the flop.
func TestHoldemHandToShowdown(t *testing.T) {
	t.Parallel()

	// Deal order is clockwise from the small blind: seats 1, 2, 0 twice,
	// then burn-flop, burn-turn, burn-river.
	deck := stackedDeck("Ks Qs As Kd Qd Ah 2c Ad 7h 7d 2d 9h 3c 5h")
	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 1,
	}, engine.WithDeck(deck))
	seatAll(t, g, 1000, 1000, 1000)

	require.NoError(t, g.StartHand())
	require.Equal(t, 0, g.Button())
	require.Equal(t, 0, g.ActionOn(), "first to act preflop is left of the big blind")

	require.NoError(t, g.Act(0, engine.Raise, 60))
	require.NoError(t, g.Act(1, engine.Call, 0))
	require.NoError(t, g.Act(2, engine.Call, 0))

	require.Len(t, g.Board(), 3, "flop dealt once preflop closes")
	require.Equal(t, 1, g.ActionOn(), "small blind opens postflop")

	require.NoError(t, g.Act(1, engine.Check, 0))
	require.NoError(t, g.Act(2, engine.Check, 0))
	require.NoError(t, g.Act(0, engine.Bet, 100))
	require.NoError(t, g.Act(1, engine.Call, 0))
	require.NoError(t, g.Act(2, engine.Fold, 0))

	require.Len(t, g.Board(), 4)
	require.NoError(t, g.Act(1, engine.Check, 0))
	require.NoError(t, g.Act(0, engine.Check, 0))

	require.Len(t, g.Board(), 5)
	require.NoError(t, g.Act(1, engine.Bet, 200))
	require.NoError(t, g.Act(0, engine.Call, 0))

	require.False(t, g.InHand(), "hand over after showdown")
	assert.Equal(t, 1420, g.Players()[0].Stack, "winner takes the pot")
	assert.Equal(t, 640, g.Players()[1].Stack)
	assert.Equal(t, 940, g.Players()[2].Stack)
	assert.Equal(t, 3000, stackSum(g), "chips conserved")

	records := g.History().Records()
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "NLH", r.Variant)
	assert.Len(t, r.Posts, 2)
	assert.Len(t, r.Board, 5)
	require.NotEmpty(t, r.Awards)
	assert.Equal(t, 0, r.Awards[0].Seat)
	assert.Equal(t, 780, r.Awards[0].Amount)
	assert.True(t, r.Final())
}

func TestHeadsUpButtonPostsSmallBlindAndActsFirst(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 2, SmallBlind: 10, BigBlind: 20, Seed: 7,
	})
	seatAll(t, g, 1000, 1000)

	require.NoError(t, g.StartHand())
	button := g.Button()
	other := 1 - button

	require.Equal(t, 990, g.Players()[button].Stack, "button posted the small blind")
	require.Equal(t, 980, g.Players()[other].Stack, "other seat posted the big blind")
	require.Equal(t, button, g.ActionOn(), "button acts first preflop")

	require.NoError(t, g.Act(button, engine.Call, 0))
	require.NoError(t, g.Act(other, engine.Check, 0))
	require.Equal(t, other, g.ActionOn(), "big blind acts first postflop")
}

func TestBigBlindHasTheOption(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 3,
	})
	seatAll(t, g, 1000, 1000, 1000)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.Call, 0))
	require.NoError(t, g.Act(1, engine.Call, 0))

	require.Equal(t, 2, g.ActionOn(), "round must not close before the big blind acts")
	require.Len(t, g.Board(), 0)

	require.NoError(t, g.Act(2, engine.Raise, 60))
	require.Equal(t, 0, g.ActionOn(), "raise reopens the betting")
}

func TestMinRaiseEnforced(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 5,
	})
	seatAll(t, g, 1000, 1000, 1000)
	require.NoError(t, g.StartHand())

	err := g.Act(0, engine.Raise, 30)
	require.ErrorIs(t, err, engine.ErrInvalidAction, "raise to 30 is below the minimum of 40")
	require.NoError(t, g.Act(0, engine.Raise, 40))

	err = g.Act(1, engine.Raise, 50)
	require.ErrorIs(t, err, engine.ErrInvalidAction, "re-raise must be at least another 20")
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 9,
	})
	seatAll(t, g, 1000, 1000, 150)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.Raise, 100))
	require.NoError(t, g.Act(1, engine.Call, 0))

	// The big blind's all-in for 150 is a raise of 50, below the minimum
	// of 80: the earlier actors may call or fold but not raise again.
	require.NoError(t, g.Act(2, engine.AllInAction, 0))
	require.Equal(t, 150, g.Betting().CurrentBet)

	err := g.Act(0, engine.Raise, 300)
	require.ErrorIs(t, err, engine.ErrInvalidAction)
	err = g.Act(0, engine.AllInAction, 0)
	require.ErrorIs(t, err, engine.ErrInvalidAction, "raising all in is still a raise")

	require.NoError(t, g.Act(0, engine.Call, 0))
	require.NoError(t, g.Act(1, engine.Call, 0))
	require.Len(t, g.Board(), 3, "round closed once the short all in was called")
}

func TestFullRaiseAllInReopensBetting(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 11,
	})
	seatAll(t, g, 1000, 1000, 200)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.Raise, 100))
	require.NoError(t, g.Act(1, engine.Call, 0))
	require.NoError(t, g.Act(2, engine.AllInAction, 0))

	// 200 is a full raise over 100, so seat 0 may raise again.
	require.NoError(t, g.Act(0, engine.Raise, 400))
}

func TestFoldsEndHandWithoutShowdown(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 13,
	})
	seatAll(t, g, 1000, 1000, 1000)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.Fold, 0))
	require.NoError(t, g.Act(1, engine.Fold, 0))

	require.False(t, g.InHand())
	assert.Equal(t, 1010, g.Players()[2].Stack, "big blind collects the blinds")
	assert.Equal(t, 3000, stackSum(g))

	r := g.History().Records()[0]
	assert.Empty(t, r.Reveals, "no cards shown on an uncontested win")
}

func TestTiedHandsSplitWithOddChipClockwiseFromButton(t *testing.T) {
	t.Parallel()

	// Seats 1 and 2 hold identical ace-kings; seat 0 plays the board with
	// a worse kicker. Pot of 75 splits 38/37 with the odd chip to the
	// first winner clockwise from the button.
	deck := stackedDeck("Ah Ad 3c Kh Kd 4c 6d 2c 2d 5h 7d 5s 8d 9c")
	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 25, Seed: 17,
	}, engine.WithDeck(deck))
	seatAll(t, g, 1000, 1000, 1000)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.Call, 0))
	require.NoError(t, g.Act(1, engine.Call, 0))
	require.NoError(t, g.Act(2, engine.Check, 0))
	for _, street := range []int{3, 4, 5} {
		require.Len(t, g.Board(), street)
		require.NoError(t, g.Act(1, engine.Check, 0))
		require.NoError(t, g.Act(2, engine.Check, 0))
		require.NoError(t, g.Act(0, engine.Check, 0))
	}

	assert.Equal(t, 975, g.Players()[0].Stack, "seat 0 loses its call")
	assert.Equal(t, 1013, g.Players()[1].Stack, "odd chip to the first winner after the button")
	assert.Equal(t, 1012, g.Players()[2].Stack)
	assert.Equal(t, 3000, stackSum(g))
}

func TestSidePotsPaidByStrength(t *testing.T) {
	t.Parallel()

	// Seat 1 (short, all in) holds the best hand and wins only the main
	// pot; seat 2 wins the side pot; seat 0 gets nothing.
	deck := stackedDeck("As Kh 8c Ah Kd 9d 2c Ac 7s 7h 2d Td 3c 2h")
	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 19,
	}, engine.WithDeck(deck))
	seatAll(t, g, 1000, 300, 1000)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.Raise, 600))
	require.NoError(t, g.Act(1, engine.AllInAction, 0))
	require.NoError(t, g.Act(2, engine.Call, 0))

	// Seats 0 and 2 are live with 400 behind each; check it down.
	for g.InHand() {
		require.NoError(t, g.Act(g.ActionOn(), engine.Check, 0))
	}

	// Main pot 900 to seat 1 (aces full), side pot 600 to seat 2 (kings
	// up beat seat 0's pair of sevens).
	assert.Equal(t, 400, g.Players()[0].Stack)
	assert.Equal(t, 900, g.Players()[1].Stack)
	assert.Equal(t, 1000, g.Players()[2].Stack)
	assert.Equal(t, 2300, stackSum(g))
}

func TestUncalledBetReturnsToBettor(t *testing.T) {
	t.Parallel()

	// Scenario from the pot tests, played out: the covering stack's
	// uncalled 500 forms a pot only it is eligible for, so it comes back.
	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 23,
	})
	seatAll(t, g, 300, 800, 1300)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.AllInAction, 0))
	require.NoError(t, g.Act(1, engine.AllInAction, 0))
	require.NoError(t, g.Act(2, engine.AllInAction, 0))

	require.False(t, g.InHand(), "everyone all in runs out to showdown")
	assert.Equal(t, 2400, stackSum(g), "chips conserved including the refund")
	assert.GreaterOrEqual(t, g.Players()[2].Stack, 500,
		"covering stack gets its uncalled 500 back whatever the showdown result")
}

func TestAllInCallRunsOutRemainingStreets(t *testing.T) {
	t.Parallel()

	// Once the short stack is all in and called, nobody can respond to a
	// bet, so the engine must deal the remaining streets to showdown
	// without soliciting the covering stack on every street.
	deck := stackedDeck("Kh Ad Kd Ah 2c 7s 8d 3c 9h 4s 5d 6h")
	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 2, SmallBlind: 10, BigBlind: 20, Seed: 31,
	}, engine.WithDeck(deck))
	seatAll(t, g, 100, 1000)

	require.NoError(t, g.StartHand())
	require.Equal(t, 0, g.Button())
	require.NoError(t, g.Act(0, engine.AllInAction, 0))
	require.NoError(t, g.Act(1, engine.Call, 0))

	require.False(t, g.InHand(), "call of the all-in ends all betting")
	require.Len(t, g.Board(), 5, "board ran out to the river")
	assert.Equal(t, 200, g.Players()[0].Stack, "aces hold up for the shove")
	assert.Equal(t, 900, g.Players()[1].Stack)
	assert.Equal(t, 1100, stackSum(g))
}

func TestHeadsUpAllInIdenticalHandsSplitEvenly(t *testing.T) {
	t.Parallel()

	// Pocket kings against pocket kings with the straight on the board:
	// both seats play the board and leave with exactly their starting
	// stack.
	deck := stackedDeck("Kc Ks Kd Kh 7h 2c 3d 4h 8h 5s 9h 6c")
	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 2, SmallBlind: 10, BigBlind: 20, Seed: 37,
	}, engine.WithDeck(deck))
	seatAll(t, g, 1000, 1000)

	require.NoError(t, g.StartHand())
	require.NoError(t, g.Act(0, engine.AllInAction, 0))
	require.NoError(t, g.Act(1, engine.AllInAction, 0))

	require.False(t, g.InHand())
	require.Len(t, g.Board(), 5)

	r := g.History().Records()[len(g.History().Records())-1]
	require.Len(t, r.Awards, 2)
	assert.Equal(t, 1000, r.Awards[0].Amount)
	assert.Equal(t, 1000, r.Awards[1].Amount)
	assert.Equal(t, 1000, g.Players()[0].Stack)
	assert.Equal(t, 1000, g.Players()[1].Stack)
}

func TestActingOutOfTurnRejected(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 29,
	})
	seatAll(t, g, 1000, 1000, 1000)
	require.NoError(t, g.StartHand())

	err := g.Act(1, engine.Call, 0)
	require.ErrorIs(t, err, engine.ErrInvalidState)

	err = g.Act(0, engine.Check, 0)
	require.ErrorIs(t, err, engine.ErrInvalidAction, "cannot check facing the blind")
}

func TestSeatingRules(t *testing.T) {
	t.Parallel()

	g := newGame(t, variant.NewHoldem(), engine.Config{
		MaxPlayers: 3, SmallBlind: 10, BigBlind: 20, Seed: 31,
	})
	require.ErrorIs(t, g.Seat(5, "zed", 100), engine.ErrInvalidArgument)
	require.ErrorIs(t, g.Seat(0, "", 100), engine.ErrInvalidArgument)
	require.ErrorIs(t, g.Seat(0, "zed", 0), engine.ErrInvalidArgument)

	require.NoError(t, g.Seat(0, "alice", 100))
	require.ErrorIs(t, g.Seat(0, "bob", 100), engine.ErrInvalidState)

	require.ErrorIs(t, g.StartHand(), engine.ErrInvalidState, "one player cannot start a hand")

	require.NoError(t, g.Seat(1, "bob", 100))
	require.NoError(t, g.StartHand())
	require.ErrorIs(t, g.Seat(2, "carol", 100), engine.ErrInvalidState, "no seating mid-hand")
}

// hiLoHoldem turns hold'em into a split-pot game for testing the award
// path: the low is the best ace-to-five eight-or-better from all seven
// cards.
type hiLoHoldem struct {
	*variant.Holdem
}

func (hiLoHoldem) LowHand(g *engine.Game, seat int) (poker.LowScore, bool) {
	p, err := g.PlayerAt(seat)
	if err != nil {
		return 0, false
	}
	cards := make([]poker.Card, 0, 7)
	cards = append(cards, p.Cards()...)
	cards = append(cards, g.Board()...)
	low := poker.EvaluateAceToFiveLow(cards)
	return low, low.QualifiesEightOrBetter()
}

func TestHiLoPotSplitsBetweenHighAndLow(t *testing.T) {
	t.Parallel()

	// Heads up: button holds A6 for the only qualifying low, the other
	// seat holds kings for the high. Board 2-3-4-9-K, no wheel.
	d := stackedDeck("Kh Ah Kc 6s 7d 2c 3d 4h 8d 9s 9d Kd")
	g := newGame(t, hiLoHoldem{variant.NewHoldem()}, engine.Config{
		MaxPlayers: 2, SmallBlind: 10, BigBlind: 20, Seed: 37,
	}, engine.WithDeck(d))
	seatAll(t, g, 1000, 1000)

	require.NoError(t, g.StartHand())
	button := g.Button()
	other := 1 - button

	require.NoError(t, g.Act(button, engine.Call, 0))
	require.NoError(t, g.Act(other, engine.Check, 0))
	for g.InHand() {
		require.NoError(t, g.Act(g.ActionOn(), engine.Check, 0))
	}

	r := g.History().Records()[0]
	require.Len(t, r.Awards, 2, "pot split between high and low")
	assert.Equal(t, 1000, g.Players()[button].Stack, "low half returns the button's 20")
	assert.Equal(t, 1000, g.Players()[other].Stack, "high half returns the other 20")
	assert.Equal(t, 2000, stackSum(g))
}

// Seeded random playouts: whatever the action sequence, chips are
// conserved and every hand terminates.
func TestRandomPlayoutsConserveChips(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"NLH", "PLO"} {
		v, err := variant.New(code)
		require.NoError(t, err)

		g := newGame(t, v, engine.Config{
			MaxPlayers: 4, SmallBlind: 5, BigBlind: 10, Ante: 1, Seed: 42,
		})
		seatAll(t, g, 500, 500, 500, 500)

		for hand := 0; hand < 50; hand++ {
			if err := g.StartHand(); err != nil {
				break // not enough funded players left
			}
			for steps := 0; g.InHand(); steps++ {
				require.Less(t, steps, 1000, "hand did not terminate")
				seat := g.ActionOn()
				tries := []struct {
					action engine.Action
					amount int
				}{
					{engine.Call, 0},
					{engine.Check, 0},
					{engine.Bet, g.MinOpenBet()},
					{engine.Raise, g.Betting().CurrentBet + g.Betting().MinRaise},
					{engine.Fold, 0},
				}
				acted := false
				for i := range tries {
					try := tries[(steps+i)%len(tries)]
					if err := g.Act(seat, try.action, try.amount); err == nil {
						acted = true
						break
					} else {
						require.ErrorIs(t, err, engine.ErrInvalidAction)
					}
				}
				require.True(t, acted, "no legal action for seat %d", seat)
			}
			require.Equal(t, 2000, stackSum(g), "%s hand %d leaked chips", code, hand)
		}
	}
}

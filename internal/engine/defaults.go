package engine

import "fmt"

// Canonical betting semantics shared by every variant. Variants delegate
// here and layer their own structure on top (bring-in completion in stud,
// round-dependent bet units in fixed limit).

// MinOpenBet is the smallest legal opening bet for the current round.
func (g *Game) MinOpenBet() int {
	if g.structure == FixedLimit {
		return g.betting.FixedBet
	}
	return g.cfg.BigBlind
}

// MaxBetTo returns the largest legal total bet for a seat under the
// table's structure. Pot limit caps a raise at the pot after calling; no
// limit caps at the stack.
func (g *Game) MaxBetTo(seat int) int {
	p := g.players[seat]
	switch g.structure {
	case FixedLimit:
		if g.betting.CurrentBet == 0 {
			return g.betting.FixedBet
		}
		return g.betting.CurrentBet + g.betting.FixedBet
	case PotLimit:
		toCall := g.betting.CurrentBet - p.Bet
		maxTo := g.betting.CurrentBet + g.PotTotal() + toCall
		if maxTo == 0 {
			maxTo = g.cfg.BigBlind
		}
		if stackTo := p.Stack + p.Bet; stackTo < maxTo {
			return stackTo
		}
		return maxTo
	default:
		return p.Stack + p.Bet
	}
}

// ValidateActionDefault checks an action against the canonical table
// without mutating anything.
func (g *Game) ValidateActionDefault(seat int, action Action, amount int) error {
	p := g.players[seat]
	if !p.CanAct() {
		return fmt.Errorf("%w: seat %d is %s", ErrInvalidAction, seat, p.State)
	}
	b := &g.betting
	toCall := b.CurrentBet - p.Bet

	switch action {
	case Fold:
		return nil

	case Check:
		if toCall != 0 {
			return fmt.Errorf("%w: cannot check facing a bet of %d", ErrInvalidAction, b.CurrentBet)
		}
		return nil

	case Call:
		if toCall <= 0 {
			return fmt.Errorf("%w: nothing to call", ErrInvalidAction)
		}
		return nil

	case Bet:
		if b.CurrentBet != 0 {
			return fmt.Errorf("%w: cannot bet facing a bet, raise instead", ErrInvalidAction)
		}
		if g.structure == FixedLimit && amount != b.FixedBet {
			return fmt.Errorf("%w: fixed-limit bet must be %d", ErrInvalidAction, b.FixedBet)
		}
		if amount < g.MinOpenBet() {
			return fmt.Errorf("%w: bet %d below minimum %d", ErrInvalidAction, amount, g.MinOpenBet())
		}
		if amount > g.MaxBetTo(seat) {
			return fmt.Errorf("%w: bet %d above maximum %d", ErrInvalidAction, amount, g.MaxBetTo(seat))
		}
		if amount > p.Stack+p.Bet {
			return fmt.Errorf("%w: bet %d exceeds stack", ErrInvalidAction, amount)
		}
		return nil

	case Raise:
		if b.CurrentBet == 0 {
			return fmt.Errorf("%w: nothing to raise, bet instead", ErrInvalidAction)
		}
		if b.HasActed(seat) {
			return fmt.Errorf("%w: betting not reopened for seat %d", ErrInvalidAction, seat)
		}
		if g.structure == FixedLimit {
			if amount != b.CurrentBet+b.FixedBet {
				return fmt.Errorf("%w: fixed-limit raise must be to %d", ErrInvalidAction, b.CurrentBet+b.FixedBet)
			}
		} else if amount < b.CurrentBet+b.MinRaise {
			return fmt.Errorf("%w: raise to %d below minimum %d", ErrInvalidAction, amount, b.CurrentBet+b.MinRaise)
		}
		if amount > g.MaxBetTo(seat) {
			return fmt.Errorf("%w: raise to %d above maximum %d", ErrInvalidAction, amount, g.MaxBetTo(seat))
		}
		if amount > p.Stack+p.Bet {
			return fmt.Errorf("%w: raise to %d exceeds stack", ErrInvalidAction, amount)
		}
		return nil

	case AllInAction:
		if p.Stack == 0 {
			return fmt.Errorf("%w: no chips to move in", ErrInvalidAction)
		}
		if to := p.Stack + p.Bet; to > b.CurrentBet && b.HasActed(seat) {
			return fmt.Errorf("%w: betting not reopened for seat %d", ErrInvalidAction, seat)
		}
		if g.structure == PotLimit {
			if to := p.Stack + p.Bet; to > g.MaxBetTo(seat) {
				return fmt.Errorf("%w: all-in of %d exceeds pot-limit cap %d", ErrInvalidAction, to, g.MaxBetTo(seat))
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown action %d", ErrInvalidAction, action)
	}
}

// ApplyActionDefault mutates player and betting state for a validated
// action.
func (g *Game) ApplyActionDefault(seat int, action Action, amount int) error {
	p := g.players[seat]
	b := &g.betting

	switch action {
	case Fold:
		p.State = Folded
		b.MarkActed(seat)

	case Check:
		b.MarkActed(seat)

	case Call:
		p.commit(b.CurrentBet - p.Bet)
		b.MarkActed(seat)

	case Bet:
		p.commit(amount - p.Bet)
		b.CurrentBet = amount
		b.MinRaise = amount
		b.Reopen(seat)

	case Raise:
		raiseBy := amount - b.CurrentBet
		p.commit(amount - p.Bet)
		b.CurrentBet = amount
		b.MinRaise = raiseBy
		b.Reopen(seat)

	case AllInAction:
		p.commit(p.Stack)
		to := p.Bet
		if to <= b.CurrentBet {
			// All-in call for less.
			b.MarkActed(seat)
			break
		}
		raiseBy := to - b.CurrentBet
		b.CurrentBet = to
		if raiseBy >= b.MinRaise {
			b.MinRaise = raiseBy
			b.Reopen(seat)
		} else {
			// Short all-in: later seats may call or fold but the betting
			// is not reopened for anyone who already acted.
			b.MarkActed(seat)
		}

	default:
		return fmt.Errorf("%w: unknown action %d", ErrInvalidAction, action)
	}
	return nil
}

// BettingCompleteDefault reports whether the round is over: fewer than two
// seats can still act, or every seat that can act has matched the current
// bet since the last full raise.
func (g *Game) BettingCompleteDefault() bool {
	actable := 0
	lone := -1
	for _, p := range g.players {
		if p.CanAct() {
			actable++
			lone = p.Seat
		}
	}
	if actable == 0 {
		return true
	}
	if actable == 1 {
		// Nobody can respond to further betting. The round ends as soon
		// as the lone seat faces no outstanding bet; if it does, it still
		// owes a call-or-fold decision.
		return g.players[lone].Bet == g.betting.CurrentBet
	}
	for _, p := range g.players {
		if !p.CanAct() {
			continue
		}
		if !g.betting.HasActed(p.Seat) || p.Bet != g.betting.CurrentBet {
			return false
		}
	}
	return true
}

// EndBettingRoundDefault folds the round's bets into the hand totals.
// Chips already live in TotalBet, so only the per-round counters reset.
func (g *Game) EndBettingRoundDefault() error {
	for _, p := range g.players {
		p.Bet = 0
	}
	return nil
}

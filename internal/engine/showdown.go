package engine

import (
	"sort"

	"github.com/lox/pokerengine/poker"
)

// awardUncontested pays the whole pot to the last seat standing. No cards
// are revealed.
func (g *Game) awardUncontested() error {
	var winner *Player
	for _, p := range g.players {
		if p.InHand() {
			winner = p
			break
		}
	}
	total := g.PotTotal()
	winner.Stack += total
	g.record.Awards = append(g.record.Awards, AwardRecord{Seat: winner.Seat, Amount: total, Pot: 0})
	g.emit(PotAwarded{Seat: winner.Seat, Amount: total, Pot: 0})
	g.logger.Debug("uncontested win", "hand", g.handSeq, "seat", winner.Seat, "amount", total)
	return g.finalizeHand()
}

// showdown reveals the remaining hands, builds the pots and pays each one
// to its best eligible hand (split between high and qualifying low for
// hi-lo variants).
func (g *Game) showdown() error {
	hilo, isHiLo := g.variant.(HiLoVariant)

	for _, p := range g.players {
		if !p.InHand() {
			continue
		}
		desc := g.variant.DescribeHand(g, p.Seat)
		for i, c := range p.Cards() {
			if !p.FaceUp(i) {
				g.record.Reveals = append(g.record.Reveals, RevealRecord{
					Seat: p.Seat, Card: c, Round: "showdown",
				})
			}
		}
		g.emit(ShowdownReveal{Seat: p.Seat, Cards: p.Cards(), Desc: desc})
	}

	pots := BuildPots(g.players)
	for i, pot := range pots {
		if len(pot.Eligible) == 1 {
			g.award(pot.Eligible[0], pot.Amount, i)
			continue
		}
		if isHiLo {
			if lowWinners := g.lowWinners(hilo, pot.Eligible); len(lowWinners) > 0 {
				lowHalf := pot.Amount / 2
				g.distribute(g.highWinners(pot.Eligible), pot.Amount-lowHalf, i)
				g.distribute(lowWinners, lowHalf, i)
				continue
			}
		}
		g.distribute(g.highWinners(pot.Eligible), pot.Amount, i)
	}
	return g.finalizeHand()
}

// highWinners returns the eligible seats whose hands tie for best under
// the variant's ordering.
func (g *Game) highWinners(eligible []int) []int {
	winners := []int{eligible[0]}
	for _, seat := range eligible[1:] {
		switch cmp := g.variant.CompareHands(g, seat, winners[0]); {
		case cmp > 0:
			winners = winners[:0]
			winners = append(winners, seat)
		case cmp == 0:
			winners = append(winners, seat)
		}
	}
	return winners
}

// lowWinners returns the eligible seats tying for the best qualifying low,
// or nil when nobody qualifies.
func (g *Game) lowWinners(hilo HiLoVariant, eligible []int) []int {
	var winners []int
	var best poker.LowScore
	for _, seat := range eligible {
		low, ok := hilo.LowHand(g, seat)
		if !ok {
			continue
		}
		if len(winners) == 0 || low.Compare(best) > 0 {
			winners = winners[:0]
			winners = append(winners, seat)
			best = low
		} else if low == best {
			winners = append(winners, seat)
		}
	}
	return winners
}

// distribute splits an amount evenly among winners; any remainder goes to
// the first winner clockwise from the button.
func (g *Game) distribute(winners []int, amount, pot int) {
	n := len(g.players)
	sort.Slice(winners, func(i, j int) bool {
		return (winners[i]-g.button-1+n)%n < (winners[j]-g.button-1+n)%n
	})
	share := amount / len(winners)
	rem := amount % len(winners)
	for i, seat := range winners {
		paid := share
		if i == 0 {
			paid += rem
		}
		if paid > 0 {
			g.award(seat, paid, pot)
		}
	}
}

func (g *Game) award(seat, amount, pot int) {
	g.players[seat].Stack += amount
	g.record.Awards = append(g.record.Awards, AwardRecord{Seat: seat, Amount: amount, Pot: pot})
	g.emit(PotAwarded{Seat: seat, Amount: amount, Pot: pot})
}

// finalizeHand closes out the hand and checks chip conservation.
func (g *Game) finalizeHand() error {
	after := 0
	for _, p := range g.players {
		after += p.Stack
		p.Bet = 0
	}
	if after != g.chipFloat {
		g.logger.Error("chip conservation violated", "hand", g.handSeq, "before", g.chipFloat, "after", after)
	}

	g.variant.Cleanup(g)
	g.scratch = nil
	g.inHand = false
	g.phase = PhaseIdle
	g.actionOn = -1
	g.history.Finalize(g.record)
	g.logger.Debug("hand finished", "hand", g.handSeq, "pot", g.PotTotal())
	g.emit(HandEnded{HandID: g.handSeq})
	return nil
}

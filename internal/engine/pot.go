package engine

import "sort"

// Pot is one pool of committed chips and the seats that can win it.
type Pot struct {
	Amount   int
	Eligible []int
}

// BuildPots partitions all committed chips into a main pot and side pots.
// Pots are derived on demand from per-player cumulative contributions
// rather than maintained incrementally, which sidesteps the bugs that
// appear when partial all-ins interleave with later raises.
//
// Levels are the distinct contribution totals; pot i collects the slice
// between level i-1 and level i from every seat that reached it, and is
// winnable by the non-folded seats among them. Adjacent pots with the same
// eligible set are merged.
func BuildPots(players []*Player) []Pot {
	levels := make([]int, 0, len(players))
	for _, p := range players {
		if p != nil && p.TotalBet > 0 {
			levels = append(levels, p.TotalBet)
		}
	}
	if len(levels) == 0 {
		return nil
	}
	sort.Ints(levels)
	levels = dedupe(levels)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			if p == nil || p.TotalBet <= prev {
				continue
			}
			slice := min(p.TotalBet, level) - prev
			pot.Amount += slice
			if p.TotalBet >= level && p.InHand() {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		prev = level
		if pot.Amount == 0 {
			continue
		}
		if n := len(pots); n > 0 && sameSeats(pots[n-1].Eligible, pot.Eligible) {
			pots[n-1].Amount += pot.Amount
			continue
		}
		pots = append(pots, pot)
	}
	return pots
}

// PotTotal is the sum of all committed chips this hand, folded seats
// included.
func PotTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		if p != nil {
			total += p.TotalBet
		}
	}
	return total
}

func dedupe(sorted []int) []int {
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func sameSeats(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

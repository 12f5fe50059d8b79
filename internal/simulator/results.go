package simulator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/pokerengine/internal/engine"
)

// Results aggregates what happened across a run.
type Results struct {
	Hands      int
	Showdowns  int
	TotalPot   int
	LargestPot int
	NetBySeat  map[int]int
}

// observe folds the most recent finalized hand into the totals. The
// before slice holds per-seat stacks at hand start, so net winnings are a
// plain stack delta and rebuys never distort them.
func (r *Results) observe(g *engine.Game, before []int) {
	records := g.History().Records()
	if len(records) == 0 {
		return
	}
	rec := records[len(records)-1]
	r.Hands++

	pot := 0
	for _, a := range rec.Awards {
		pot += a.Amount
	}
	r.TotalPot += pot
	if pot > r.LargestPot {
		r.LargestPot = pot
	}
	if len(rec.Reveals) > 0 {
		r.Showdowns++
	}
	for seat, p := range g.Players() {
		if p.Occupied() {
			r.NetBySeat[seat] += p.Stack - before[seat]
		}
	}
}

// Summary renders a short human-readable report.
func (r *Results) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "hands played:  %d\n", r.Hands)
	fmt.Fprintf(&b, "showdowns:     %d\n", r.Showdowns)
	if r.Hands > 0 {
		fmt.Fprintf(&b, "average pot:   %d\n", r.TotalPot/r.Hands)
	}
	fmt.Fprintf(&b, "largest pot:   %d\n", r.LargestPot)

	seats := make([]int, 0, len(r.NetBySeat))
	for seat := range r.NetBySeat {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	for _, seat := range seats {
		fmt.Fprintf(&b, "seat %d net:    %+d\n", seat, r.NetBySeat[seat])
	}
	return b.String()
}

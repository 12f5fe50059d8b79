package variant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/pokerengine/poker"
)

// Display strings for the lowball orderings. The packed scores are
// authoritative; these exist for logs, histories and the table view.

func lowRankChar(r uint32) byte {
	return "A23456789TJQK"[r-1]
}

func joinRanks(ranks []uint32) string {
	var b strings.Builder
	for i, r := range ranks {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteByte(lowRankChar(r))
	}
	return b.String()
}

// aceToFiveString renders an ace-to-five low like "8-6-4-2-A low".
func aceToFiveString(l poker.LowScore) string {
	cat := uint32(l >> 28)
	primary := uint32(l>>24) & 0xF
	secondary := uint32(l>>20) & 0xF

	var ranks []uint32
	switch cat {
	case 1:
		ranks = append(ranks, primary, primary)
	case 2:
		ranks = append(ranks, primary, primary, secondary, secondary)
	case 3:
		ranks = append(ranks, primary, primary, primary)
	case 4:
		ranks = append(ranks, primary, primary, primary, secondary, secondary)
	case 5:
		ranks = append(ranks, primary, primary, primary, primary)
	}
	for shift := 16; shift >= 0 && len(ranks) < 5; shift -= 4 {
		if r := uint32(l>>shift) & 0xF; r != 0 {
			ranks = append(ranks, r)
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return joinRanks(ranks) + " low"
}

// deuceToSevenString renders a deuce-to-seven low by its high-hand
// reading, which is how the hand is spoken at the table.
func deuceToSevenString(l poker.LowScore) string {
	return poker.Score(l).String()
}

// badugiString renders a badugi like "Badugi: 7-5-3-A" or, for incomplete
// hands, "3-card: 5-3-A".
func badugiString(b poker.BadugiScore) string {
	count := b.CardCount()
	ranks := make([]uint32, 0, 4)
	for shift := 24; shift >= 12 && len(ranks) < count; shift -= 4 {
		ranks = append(ranks, uint32(b>>shift)&0xF)
	}
	if count == 4 {
		return "Badugi: " + joinRanks(ranks)
	}
	return fmt.Sprintf("%d-card: %s", count, joinRanks(ranks))
}

package poker

import "math/bits"

// The five-card fast path is two table lookups on the common path: one
// 13-bit per-suit mask indexes the flush table, and when all five ranks are
// distinct the 13-bit union mask indexes the unique-ranks table. Hands with
// repeated ranks fall through to multiplicity counting. Both tables are
// process-wide, immutable, and built once at startup.

const (
	broadwayMask = 0x1F00 // T J Q K A
	wheelMask    = 0x100F // A 2 3 4 5
)

// straightHigh returns the high rank of the best straight in a 13-bit rank
// mask, or 0 when there is none. The wheel reports Five as its high card.
func straightHigh(mask uint16) Rank {
	mask &= 0x1FFF
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := Rank(bits.Len16(seq)-1) + Two
		return low + 4
	}
	if mask&wheelMask == wheelMask {
		return Five
	}
	return 0
}

// topRanks writes the highest n ranks of mask into out in descending order.
func topRanks(mask uint16, out []Rank) {
	for i := range out {
		top := bits.Len16(mask) - 1
		out[i] = Rank(top) + Two
		mask &^= 1 << top
	}
}

var flushTable, uniqueTable = buildFiveCardTables()

// buildFiveCardTables fills the two mask-indexed tables. Only the 1287
// five-bit masks are populated; all other entries stay zero and are never
// read by the evaluator.
func buildFiveCardTables() (flush, unique [1 << 13]Score) {
	var ranks [5]Rank
	for mask := uint16(0); mask < 1<<13; mask++ {
		if bits.OnesCount16(mask) != 5 {
			continue
		}
		high := straightHigh(mask)
		topRanks(mask, ranks[:])
		switch {
		case high == Ace && mask == broadwayMask:
			flush[mask] = packScore(RoyalFlush, Ace, 0)
			unique[mask] = packScore(Straight, Ace, 0)
		case high != 0:
			flush[mask] = packScore(StraightFlush, high, 0)
			unique[mask] = packScore(Straight, high, 0)
		default:
			flush[mask] = packScore(Flush, 0, 0, ranks[0], ranks[1], ranks[2], ranks[3], ranks[4])
			unique[mask] = packScore(HighCard, 0, 0, ranks[0], ranks[1], ranks[2], ranks[3], ranks[4])
		}
	}
	return flush, unique
}

// Evaluate5 scores exactly five cards. The result is a pure function of the
// card set; input order is irrelevant. No allocation.
func Evaluate5(cards []Card) Score {
	var suitMasks [4]uint16
	var union uint16
	for _, c := range cards {
		suitMasks[c.Suit()] |= 1 << c.rankIndex()
		union |= 1 << c.rankIndex()
	}

	for _, sm := range suitMasks {
		if bits.OnesCount16(sm) == 5 {
			return flushTable[sm]
		}
	}
	if bits.OnesCount16(union) == 5 {
		return uniqueTable[union]
	}
	return scorePaired(cards, union)
}

// scorePaired classifies hands containing at least one repeated rank.
func scorePaired(cards []Card, union uint16) Score {
	var counts [15]uint8
	for _, c := range cards {
		counts[c.Rank()]++
	}

	var quad, trip, pairHi, pairLo Rank
	for r := Ace; r >= Two; r-- {
		switch counts[r] {
		case 4:
			quad = r
		case 3:
			trip = r
		case 2:
			if pairHi == 0 {
				pairHi = r
			} else if pairLo == 0 {
				pairLo = r
			}
		}
	}

	switch {
	case quad != 0:
		kicker := highestExcluding(union, quad)
		return packScore(FourOfAKind, quad, 0, kicker)
	case trip != 0 && pairHi != 0:
		return packScore(FullHouse, trip, pairHi)
	case trip != 0:
		var ks [2]Rank
		kickersExcluding(union, ks[:], trip)
		return packScore(ThreeOfAKind, trip, 0, ks[0], ks[1])
	case pairLo != 0:
		kicker := highestExcluding(union, pairHi, pairLo)
		return packScore(TwoPair, pairHi, pairLo, kicker)
	default:
		var ks [3]Rank
		kickersExcluding(union, ks[:], pairHi)
		return packScore(Pair, pairHi, 0, ks[0], ks[1], ks[2])
	}
}

func highestExcluding(mask uint16, exclude ...Rank) Rank {
	for _, r := range exclude {
		mask &^= 1 << (r - Two)
	}
	if mask == 0 {
		return 0
	}
	return Rank(bits.Len16(mask)-1) + Two
}

func kickersExcluding(mask uint16, out []Rank, exclude ...Rank) {
	for _, r := range exclude {
		mask &^= 1 << (r - Two)
	}
	topRanks(mask, out)
}

// subsetExclusions lists, for each of the C(7,5)=21 five-card subsets of a
// seven-card hand, the two indices left out.
var subsetExclusions = [21][2]uint8{
	{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6},
	{1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6},
	{2, 3}, {2, 4}, {2, 5}, {2, 6},
	{3, 4}, {3, 5}, {3, 6},
	{4, 5}, {4, 6},
	{5, 6},
}

// Evaluate7 scores the best five-card hand among exactly seven cards by
// enumerating all 21 subsets through the fast path.
func Evaluate7(cards []Card) Score {
	var subset [5]Card
	var best Score
	for _, ex := range subsetExclusions {
		n := 0
		for i := uint8(0); i < 7; i++ {
			if i != ex[0] && i != ex[1] {
				subset[n] = cards[i]
				n++
			}
		}
		if s := Evaluate5(subset[:]); s > best {
			best = s
		}
	}
	return best
}

// EvaluateBest scores the best five-card hand from five, six or seven
// cards.
func EvaluateBest(cards []Card) Score {
	switch len(cards) {
	case 5:
		return Evaluate5(cards)
	case 7:
		return Evaluate7(cards)
	default:
		var subset [5]Card
		var best Score
		forEachFiveSubset(cards, subset[:], func(s []Card) {
			if v := Evaluate5(s); v > best {
				best = v
			}
		})
		return best
	}
}

// forEachFiveSubset invokes fn for every five-card subset of cards,
// reusing buf as scratch.
func forEachFiveSubset(cards []Card, buf []Card, fn func([]Card)) {
	n := len(cards)
	if n < 5 {
		return
	}
	var idx [5]int
	for i := range idx {
		idx[i] = i
	}
	for {
		for i, j := range idx {
			buf[i] = cards[j]
		}
		fn(buf)
		// Advance the combination odometer.
		i := 4
		for i >= 0 && idx[i] == n-5+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < 5; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

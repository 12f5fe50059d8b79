package poker

// Low-hand orderings. All three lowball scores share the convention that a
// smaller packed value is a better hand, with Compare returning positive
// when the receiver wins so callers treat high and low scores uniformly.

// LowScore is a packed lowball hand value. Smaller is better.
type LowScore uint32

// Compare returns a positive value if l beats other, negative if it loses,
// and zero on a tie.
func (l LowScore) Compare(other LowScore) int {
	if l < other {
		return 1
	}
	if l > other {
		return -1
	}
	return 0
}

// a5Rank remaps a rank for ace-to-five comparison: aces count as 1.
func a5Rank(r Rank) uint32 {
	if r == Ace {
		return 1
	}
	return uint32(r)
}

// a5Score5 scores exactly five cards under ace-to-five rules: straights and
// flushes are ignored, pairs and better count against the hand.
func a5Score5(cards []Card) LowScore {
	var counts [14]uint8
	for _, c := range cards {
		counts[a5Rank(c.Rank())]++
	}

	var quad, trip, pairHi, pairLo uint32
	for r := uint32(13); r >= 1; r-- {
		switch counts[r] {
		case 4:
			quad = r
		case 3:
			trip = r
		case 2:
			if pairHi == 0 {
				pairHi = r
			} else {
				pairLo = r
			}
		}
	}

	var cat, primary, secondary uint32 // cat: 0 none through 5 quads
	switch {
	case quad != 0:
		cat, primary = 5, quad
	case trip != 0 && pairHi != 0:
		cat, primary, secondary = 4, trip, pairHi
	case trip != 0:
		cat, primary = 3, trip
	case pairLo != 0:
		cat, primary, secondary = 2, pairHi, pairLo
	case pairHi != 0:
		cat, primary = 1, pairHi
	}

	s := LowScore(cat)<<28 | LowScore(primary)<<24 | LowScore(secondary)<<20
	shift := 16
	for r := uint32(13); r >= 1; r-- {
		for i := uint8(0); i < counts[r]; i++ {
			if r != primary && r != secondary {
				s |= LowScore(r) << shift
				shift -= 4
			}
		}
	}
	return s
}

// EvaluateAceToFiveLow returns the best ace-to-five low among all five-card
// subsets of the given cards (five to seven of them).
func EvaluateAceToFiveLow(cards []Card) LowScore {
	if len(cards) == 5 {
		return a5Score5(cards)
	}
	var buf [5]Card
	best := LowScore(^uint32(0) >> 1)
	forEachFiveSubset(cards, buf[:], func(s []Card) {
		if v := a5Score5(s); v < best {
			best = v
		}
	})
	return best
}

// QualifiesEightOrBetter reports whether an ace-to-five low is five
// distinct ranks all eight or lower, the uniform hi-lo split qualifier.
func (l LowScore) QualifiesEightOrBetter() bool {
	if l>>28 != 0 {
		return false
	}
	top := uint32(l>>16) & 0xF
	return top != 0 && top <= 8
}

// EvaluateDeuceToSevenLow returns the best deuce-to-seven low among all
// five-card subsets. Aces are high and straights and flushes count against
// the hand, so the ordering is simply the inverted high-hand ordering.
func EvaluateDeuceToSevenLow(cards []Card) LowScore {
	if len(cards) == 5 {
		return LowScore(Evaluate5(cards))
	}
	var buf [5]Card
	best := LowScore(^uint32(0) >> 1)
	forEachFiveSubset(cards, buf[:], func(s []Card) {
		if v := LowScore(Evaluate5(s)); v < best {
			best = v
		}
	})
	return best
}

// BadugiScore is a packed Badugi hand value. Smaller is better: fewer
// playable cards is encoded as a higher value, and within the same count
// the sorted ranks compare descending with aces low.
type BadugiScore uint32

// Compare returns a positive value if b beats other, negative if it loses,
// and zero on a tie.
func (b BadugiScore) Compare(other BadugiScore) int {
	if b < other {
		return 1
	}
	if b > other {
		return -1
	}
	return 0
}

// CardCount returns how many cards play (1-4).
func (b BadugiScore) CardCount() int {
	return 4 - int(b>>28)
}

// EvaluateBadugi returns the best Badugi made from up to four cards: the
// largest subset with all ranks and all suits distinct, ties broken by
// lower ranks.
func EvaluateBadugi(cards []Card) BadugiScore {
	best := BadugiScore(^uint32(0) >> 1)
	n := len(cards)
	for set := 1; set < 1<<n; set++ {
		var rankMask, suitMask uint16
		valid := true
		count := 0
		var ranks [4]uint32
		for i := 0; i < n && valid; i++ {
			if set&(1<<i) == 0 {
				continue
			}
			c := cards[i]
			r := uint16(1) << (a5Rank(c.Rank()) - 1)
			s := uint16(1) << c.Suit()
			if rankMask&r != 0 || suitMask&s != 0 {
				valid = false
				break
			}
			rankMask |= r
			suitMask |= s
			ranks[count] = a5Rank(c.Rank())
			count++
		}
		if !valid {
			continue
		}
		sortDescUint32(ranks[:count])
		v := BadugiScore(4-count) << 28
		shift := 24
		for _, r := range ranks[:count] {
			v |= BadugiScore(r) << shift
			shift -= 4
		}
		if v < best {
			best = v
		}
	}
	return best
}

func sortDescUint32(vals []uint32) {
	for i := 1; i < len(vals); i++ {
		v := vals[i]
		j := i - 1
		for j >= 0 && vals[j] < v {
			vals[j+1] = vals[j]
			j--
		}
		vals[j+1] = v
	}
}

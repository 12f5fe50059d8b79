package poker

import "fmt"

// Category classifies a five-card high hand.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Score is the canonical packed form of a five-card hand value. The layout
// makes integer comparison agree with hand strength:
//
//	bits 28-31  category
//	bits 24-27  primary rank
//	bits 20-23  secondary rank (two pair / full house)
//	bits 0-19   up to five kickers, four bits each, descending
//
// Ranks are stored as 2-14. Equal scores are genuine ties and split pots.
type Score uint32

const (
	scoreCategoryShift = 28
	scorePrimaryShift  = 24
	scoreSecondShift   = 20
)

// packScore builds a Score from a category, primary and secondary rank and
// descending kickers. Unused fields are zero.
func packScore(cat Category, primary, secondary Rank, kickers ...Rank) Score {
	s := Score(cat)<<scoreCategoryShift |
		Score(primary)<<scorePrimaryShift |
		Score(secondary)<<scoreSecondShift
	shift := 16
	for _, k := range kickers {
		s |= Score(k) << shift
		shift -= 4
	}
	return s
}

// Category returns the hand category encoded in the score.
func (s Score) Category() Category {
	return Category(s >> scoreCategoryShift)
}

// Primary returns the primary rank (pair rank, straight high card, etc.).
func (s Score) Primary() Rank {
	return Rank((s >> scorePrimaryShift) & 0xF)
}

// Secondary returns the secondary rank for two pair and full houses.
func (s Score) Secondary() Rank {
	return Rank((s >> scoreSecondShift) & 0xF)
}

// Kickers returns the kickers in descending order, dropping trailing zeros.
func (s Score) Kickers() []Rank {
	out := make([]Rank, 0, 5)
	for shift := 16; shift >= 0; shift -= 4 {
		r := Rank((s >> shift) & 0xF)
		if r == 0 {
			break
		}
		out = append(out, r)
	}
	return out
}

// Compare returns a positive value if s beats other, negative if it loses,
// and zero on a tie.
func (s Score) Compare(other Score) int {
	if s > other {
		return 1
	}
	if s < other {
		return -1
	}
	return 0
}

// String describes the hand, e.g. "Full House, As over 7s".
func (s Score) String() string {
	cat := s.Category()
	switch cat {
	case TwoPair:
		return fmt.Sprintf("%s, %ss and %ss", cat, s.Primary(), s.Secondary())
	case FullHouse:
		return fmt.Sprintf("%s, %ss over %ss", cat, s.Primary(), s.Secondary())
	case Straight, StraightFlush:
		return fmt.Sprintf("%s, %s high", cat, s.Primary())
	case RoyalFlush:
		return cat.String()
	case HighCard, Flush:
		ks := s.Kickers()
		if len(ks) > 0 {
			return fmt.Sprintf("%s, %s high", cat, ks[0])
		}
		return cat.String()
	default:
		return fmt.Sprintf("%s, %ss", cat, s.Primary())
	}
}

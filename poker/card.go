// Package poker provides the card primitives and hand evaluators shared by
// every game variant: a compact card encoding, a cursor-based deck, and
// lookup-table scoring for high hands plus the ace-to-five, deuce-to-seven
// and Badugi low orderings.
package poker

import "fmt"

// Suit represents a card suit.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the one-letter suit used in logs and hand histories.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high (14); low-hand evaluators
// remap them internally.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

// String returns the one-letter rank used in logs and hand histories.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Card is a playing card encoded as suit*13 + (rank-2), giving values 0-51.
// The encoding is shared with the table generator; changing it invalidates
// any generated lookup tables.
type Card uint8

// NewCard creates a card from a suit and a rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card(uint8(suit)*13 + uint8(rank-Two))
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(c / 13)
}

// Rank returns the card's rank (2-14, ace high).
func (c Card) Rank() Rank {
	return Rank(c%13) + Two
}

// rankIndex returns the rank as 0-12 (deuce through ace), the form the
// evaluator bitmasks use.
func (c Card) rankIndex() uint8 {
	return uint8(c % 13)
}

// Valid reports whether the card is one of the 52 legal encodings.
func (c Card) Valid() bool {
	return c < 52
}

// String returns the two-character text form, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// ParseCard parses a two-character card like "As" or "td". It is the
// inverse of Card.String for all 52 cards.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("parse card %q: want 2 characters, got %d", s, len(s))
	}
	rank, err := parseRank(s[0])
	if err != nil {
		return 0, fmt.Errorf("parse card %q: %w", s, err)
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return 0, fmt.Errorf("parse card %q: %w", s, err)
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses concatenated card notation such as "AsKh7d". Spaces are
// ignored.
func ParseCards(s string) ([]Card, error) {
	var buf []byte
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			buf = append(buf, s[i])
		}
	}
	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("parse cards %q: odd length", s)
	}
	cards := make([]Card, 0, len(buf)/2)
	for i := 0; i < len(buf); i += 2 {
		c, err := ParseCard(string(buf[i : i+2]))
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses card notation and panics on error. Test helper.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '9', '8', '7', '6', '5', '4', '3', '2':
		return Rank(b - '0'), nil
	default:
		return 0, fmt.Errorf("unknown rank %q", b)
	}
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", b)
	}
}

// CardsString formats a slice of cards as space-separated text.
func CardsString(cards []Card) string {
	out := make([]byte, 0, len(cards)*3)
	for i, c := range cards {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, c.String()...)
	}
	return string(out)
}

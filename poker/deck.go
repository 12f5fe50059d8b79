package poker

import (
	"errors"
	"math/rand/v2"
)

// ErrExhausted is returned when a deal or burn runs past the end of the
// deck. It indicates a variant configuration bug, not a recoverable
// condition: the current hand must be abandoned.
var ErrExhausted = errors.New("deck exhausted")

// Deck is a standard 52-card deck with a position cursor. Cards at
// positions below the cursor have already been dealt or burned; the cursor
// only moves forward until Reset.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a deck in canonical order using the provided random
// source for shuffling. The rng may be nil for decks that are only ever
// stacked explicitly (tests).
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset repopulates the deck in canonical order and rewinds the cursor.
func (d *Deck) Reset() {
	for i := range d.cards {
		d.cards[i] = Card(i)
	}
	d.next = 0
}

// Shuffle applies a Fisher-Yates permutation to the undealt portion of the
// deck (positions at or beyond the cursor).
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > d.next; i-- {
		j := d.next + d.rng.IntN(i-d.next+1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal returns the card at the cursor and advances it.
func (d *Deck) Deal() (Card, error) {
	if d.next >= len(d.cards) {
		return 0, ErrExhausted
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

// Burn advances the cursor without returning the card.
func (d *Deck) Burn() error {
	if d.next >= len(d.cards) {
		return ErrExhausted
	}
	d.next++
	return nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Stack rewinds the deck and places the given cards on top, in order, with
// the rest following in canonical order. Used by tests to force
// deterministic deals.
func (d *Deck) Stack(top []Card) {
	d.Reset()
	var used [52]bool
	for _, c := range top {
		used[c] = true
	}
	i := copy(d.cards[:], top)
	for c := 0; c < 52; c++ {
		if !used[c] {
			d.cards[i] = Card(c)
			i++
		}
	}
}

package engine

import "github.com/lox/pokerengine/poker"

// PlayerState tracks a seat through the hand lifecycle.
type PlayerState uint8

const (
	Empty PlayerState = iota
	Active
	Folded
	AllIn
	SittingOut
)

func (s PlayerState) String() string {
	return [...]string{"empty", "active", "folded", "all-in", "sitting-out"}[s]
}

// maxHandCards is the largest private hand any supported variant deals
// (seven-card stud).
const maxHandCards = 7

// Player is one seat at the table. The engine owns the slice of players;
// seat indexes are fixed for a player's tenure.
type Player struct {
	Seat  int
	Name  string
	Stack int
	State PlayerState

	// Bet is the amount committed in the current betting round; TotalBet
	// accumulates across the whole hand and drives side-pot construction.
	Bet      int
	TotalBet int

	cards  [maxHandCards]poker.Card
	faceUp [maxHandCards]bool
	nCards int

	// drew marks draw-phase completion for the current draw round.
	drew bool
}

// Occupied reports whether someone holds the seat.
func (p *Player) Occupied() bool {
	return p.State != Empty
}

// InHand reports whether the seat still has a claim on the pot.
func (p *Player) InHand() bool {
	return p.State == Active || p.State == AllIn
}

// CanAct reports whether the seat may take a betting action.
func (p *Player) CanAct() bool {
	return p.State == Active
}

// Cards returns the player's current hand.
func (p *Player) Cards() []poker.Card {
	return p.cards[:p.nCards]
}

// FaceUp reports whether the card at idx is exposed (stud up-cards).
func (p *Player) FaceUp(idx int) bool {
	return idx >= 0 && idx < p.nCards && p.faceUp[idx]
}

// UpCards returns only the exposed cards, in deal order.
func (p *Player) UpCards() []poker.Card {
	out := make([]poker.Card, 0, p.nCards)
	for i := 0; i < p.nCards; i++ {
		if p.faceUp[i] {
			out = append(out, p.cards[i])
		}
	}
	return out
}

func (p *Player) addCard(c poker.Card, faceUp bool) {
	p.cards[p.nCards] = c
	p.faceUp[p.nCards] = faceUp
	p.nCards++
}

func (p *Player) replaceCard(idx int, c poker.Card) {
	p.cards[idx] = c
}

func (p *Player) resetForHand() {
	p.Bet = 0
	p.TotalBet = 0
	p.nCards = 0
	p.drew = false
	for i := range p.faceUp {
		p.faceUp[i] = false
	}
	switch p.State {
	case Folded, AllIn, Active:
		if p.Stack > 0 {
			p.State = Active
		} else {
			p.State = SittingOut
		}
	}
}

// commit moves up to amount chips from the stack into the current bet,
// clipping at the stack so overpaying is impossible. Returns the amount
// actually committed.
func (p *Player) commit(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Stack == 0 && p.State == Active {
		p.State = AllIn
	}
	return amount
}

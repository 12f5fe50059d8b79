package engine

import "github.com/lox/pokerengine/poker"

// Event is a notification emitted as the hand progresses. Observers
// receive events synchronously, in mutation order, on the caller's
// goroutine; renderers, network adapters and the hand-history log all
// consume the same stream.
type Event interface {
	event()
}

// Observer receives engine events.
type Observer interface {
	OnEvent(Event)
}

// HandStarted fires after the button moves and before any cards are dealt.
type HandStarted struct {
	HandID  uint64
	Variant string
	Button  int
}

// CardsDealt fires for each batch of private cards. Cards are only
// populated for face-up deals; hole cards stay hidden from observers.
type CardsDealt struct {
	Seat   int
	Count  int
	FaceUp bool
	Cards  []poker.Card
}

// BoardDealt fires when community cards land.
type BoardDealt struct {
	Round int
	Cards []poker.Card
	Board []poker.Card
}

// ForcedBet fires for blinds, antes and bring-ins.
type ForcedBet struct {
	Seat   int
	Kind   string
	Amount int
}

// ActionTaken fires after a validated action is applied.
type ActionTaken struct {
	Seat   int
	Action Action
	Amount int
	Round  int
}

// DrawTaken fires after a draw-phase exchange.
type DrawTaken struct {
	Seat  int
	Count int
}

// ShowdownReveal fires for each hand turned over at showdown.
type ShowdownReveal struct {
	Seat  int
	Cards []poker.Card
	Desc  string
}

// PotAwarded fires once per pot share paid out.
type PotAwarded struct {
	Seat   int
	Amount int
	Pot    int
}

// HandEnded fires after the hand record is finalized.
type HandEnded struct {
	HandID uint64
}

func (HandStarted) event()    {}
func (CardsDealt) event()     {}
func (BoardDealt) event()     {}
func (ForcedBet) event()      {}
func (ActionTaken) event()    {}
func (DrawTaken) event()      {}
func (ShowdownReveal) event() {}
func (PotAwarded) event()     {}
func (HandEnded) event()      {}

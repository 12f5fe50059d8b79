package server

import (
	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/poker"
)

// Message is the wire envelope sent to spectators. Payloads are flat and
// stringly typed so any client can render them without the engine's
// types.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type handStartedData struct {
	HandID  uint64 `json:"hand_id"`
	Variant string `json:"variant"`
	Button  int    `json:"button"`
}

type cardsDealtData struct {
	Seat   int    `json:"seat"`
	Count  int    `json:"count"`
	FaceUp bool   `json:"face_up"`
	Cards  string `json:"cards,omitempty"`
}

type boardDealtData struct {
	Round int    `json:"round"`
	Cards string `json:"cards"`
	Board string `json:"board"`
}

type forcedBetData struct {
	Seat   int    `json:"seat"`
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`
}

type actionTakenData struct {
	Seat   int    `json:"seat"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
	Round  int    `json:"round"`
}

type drawTakenData struct {
	Seat  int `json:"seat"`
	Count int `json:"count"`
}

type showdownData struct {
	Seat  int    `json:"seat"`
	Cards string `json:"cards"`
	Desc  string `json:"desc"`
}

type potAwardedData struct {
	Seat   int `json:"seat"`
	Amount int `json:"amount"`
	Pot    int `json:"pot"`
}

type handEndedData struct {
	HandID uint64 `json:"hand_id"`
}

// messageFor translates an engine event into its wire form.
func messageFor(e engine.Event) Message {
	switch ev := e.(type) {
	case engine.HandStarted:
		return Message{Type: "hand_started", Data: handStartedData{ev.HandID, ev.Variant, ev.Button}}
	case engine.CardsDealt:
		return Message{Type: "cards_dealt", Data: cardsDealtData{ev.Seat, ev.Count, ev.FaceUp, poker.CardsString(ev.Cards)}}
	case engine.BoardDealt:
		return Message{Type: "board_dealt", Data: boardDealtData{ev.Round, poker.CardsString(ev.Cards), poker.CardsString(ev.Board)}}
	case engine.ForcedBet:
		return Message{Type: "forced_bet", Data: forcedBetData{ev.Seat, ev.Kind, ev.Amount}}
	case engine.ActionTaken:
		return Message{Type: "action", Data: actionTakenData{ev.Seat, ev.Action.String(), ev.Amount, ev.Round}}
	case engine.DrawTaken:
		return Message{Type: "draw", Data: drawTakenData{ev.Seat, ev.Count}}
	case engine.ShowdownReveal:
		return Message{Type: "showdown", Data: showdownData{ev.Seat, poker.CardsString(ev.Cards), ev.Desc}}
	case engine.PotAwarded:
		return Message{Type: "pot_awarded", Data: potAwardedData{ev.Seat, ev.Amount, ev.Pot}}
	case engine.HandEnded:
		return Message{Type: "hand_ended", Data: handEndedData{ev.HandID}}
	default:
		return Message{Type: "unknown"}
	}
}

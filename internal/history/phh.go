package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/poker"
)

// PHHHand is a hand in PHH TOML form. Variant strings are the engine's
// short codes.
type PHHHand struct {
	Variant           string   `toml:"variant"`
	HandID            string   `toml:"hand"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Players           []string `toml:"players,omitempty"`
	Actions           []string `toml:"actions"`
	Time              string   `toml:"time,omitempty"`
}

// boardDealSizes maps the community betting rounds to the number of cards
// that hit the board entering them.
var boardDealSizes = map[string]int{"flop": 3, "turn": 1, "river": 1}

// FromRecord converts a finalized hand record to PHH form. Seat indexes
// become 1-based player numbers in seating order.
func FromRecord(r *engine.HandRecord) *PHHHand {
	n := len(r.Seats)
	playerOf := make(map[int]int, n) // seat -> 1-based player
	h := &PHHHand{
		Variant:           r.Variant,
		HandID:            fmt.Sprintf("%d", r.ID),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            r.Stakes.BigBlind,
		StartingStacks:    make([]int, n),
		Winnings:          make([]int, n),
		Time:              r.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	for i, s := range r.Seats {
		playerOf[s.Seat] = i + 1
		h.StartingStacks[i] = s.StartingStack
		h.Players = append(h.Players, s.Name)
	}
	for _, p := range r.Posts {
		i := playerOf[p.Seat] - 1
		switch p.Kind {
		case "ante":
			h.Antes[i] += p.Amount
		case "small-blind":
			h.BlindsOrStraddles[i] = p.Amount
		case "big-blind":
			h.BlindsOrStraddles[i] = p.Amount
		case "bring-in":
			h.Actions = append(h.Actions, fmt.Sprintf("p%d pb %d", playerOf[p.Seat], p.Amount))
		}
	}
	for _, a := range r.Awards {
		h.Winnings[playerOf[a.Seat]-1] += a.Amount
	}

	// Revealed hole cards, grouped per player.
	shown := make(map[int][]poker.Card)
	for _, rev := range r.Reveals {
		shown[rev.Seat] = append(shown[rev.Seat], rev.Card)
	}
	for _, s := range r.Seats {
		if cards, ok := shown[s.Seat]; ok {
			h.Actions = append(h.Actions,
				fmt.Sprintf("d dh p%d %s", playerOf[s.Seat], phhCards(cards)))
		}
	}

	// Betting actions, with board deals spliced in at round boundaries.
	round := ""
	dealt := 0
	for _, a := range r.Actions {
		if a.Round != round {
			round = a.Round
			if sz, ok := boardDealSizes[round]; ok && dealt+sz <= len(r.Board) {
				h.Actions = append(h.Actions,
					"d db "+phhCards(r.Board[dealt:dealt+sz]))
				dealt += sz
			}
		}
		h.Actions = append(h.Actions, formatAction(playerOf[a.Seat], a))
	}
	return h
}

func phhCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// formatAction renders one action in PHH vocabulary: f for fold, cc for
// check or call, cbr for any chip-committing aggression.
func formatAction(player int, a engine.ActionRecord) string {
	p := fmt.Sprintf("p%d", player)
	switch a.Action {
	case engine.Fold:
		return p + " f"
	case engine.Check, engine.Call:
		return p + " cc"
	default:
		return fmt.Sprintf("%s cbr %d", p, a.Amount)
	}
}

// EncodePHH writes the hand as PHH TOML.
func EncodePHH(w io.Writer, h *PHHHand) error {
	if h == nil {
		return fmt.Errorf("%w: nil hand", engine.ErrInvalidArgument)
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(h)
}

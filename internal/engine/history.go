package engine

import (
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokerengine/poker"
)

// HandRecord is the append-only history of one hand: metadata, forced
// bets, every action, every card revealed, and the pot awards. A record is
// created at hand start, finalized at hand end, and immutable thereafter.
type HandRecord struct {
	ID        uint64
	Variant   string
	Stakes    Stakes
	Button    int
	StartedAt time.Time

	Seats   []SeatRecord
	Posts   []PostRecord
	Actions []ActionRecord
	Reveals []RevealRecord
	Board   []poker.Card
	Awards  []AwardRecord

	FinishedAt time.Time
	final      bool
}

// Stakes captures the forced-bet configuration the hand was played at.
type Stakes struct {
	SmallBlind int
	BigBlind   int
	Ante       int
	Structure  Structure
}

// SeatRecord snapshots a seat at hand start.
type SeatRecord struct {
	Seat          int
	Name          string
	StartingStack int
}

// PostRecord is a forced bet: blind, ante or bring-in.
type PostRecord struct {
	Seat   int
	Kind   string
	Amount int
}

// ActionRecord is one voluntary action.
type ActionRecord struct {
	Seat   int
	Action Action
	Amount int
	Round  string
}

// RevealRecord is a card made public: a stud up-card or a showdown hole
// card.
type RevealRecord struct {
	Seat  int
	Card  poker.Card
	Round string
}

// AwardRecord is one pot share paid out at hand end.
type AwardRecord struct {
	Seat   int
	Amount int
	Pot    int
}

// Final reports whether the record has been finalized.
func (r *HandRecord) Final() bool {
	return r.final
}

// HistoryLog owns finalized hand records. The clock is injected so tests
// control timestamps.
type HistoryLog struct {
	clock   quartz.Clock
	records []*HandRecord
}

// NewHistoryLog creates a log. A nil clock uses real time.
func NewHistoryLog(clock quartz.Clock) *HistoryLog {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &HistoryLog{clock: clock}
}

// Begin opens a record for a new hand.
func (l *HistoryLog) Begin(id uint64, variant string, stakes Stakes, button int, players []*Player) *HandRecord {
	r := &HandRecord{
		ID:        id,
		Variant:   variant,
		Stakes:    stakes,
		Button:    button,
		StartedAt: l.clock.Now(),
	}
	for _, p := range players {
		if p != nil && p.InHand() {
			r.Seats = append(r.Seats, SeatRecord{Seat: p.Seat, Name: p.Name, StartingStack: p.Stack})
		}
	}
	return r
}

// Finalize stamps the record, freezes it and appends it to the log.
func (l *HistoryLog) Finalize(r *HandRecord) {
	if r.final {
		return
	}
	r.FinishedAt = l.clock.Now()
	r.final = true
	l.records = append(l.records, r)
}

// Records returns the finalized hands, oldest first.
func (l *HistoryLog) Records() []*HandRecord {
	return l.records
}

// Package tui renders a live table view in the terminal. The viewer is a
// pure spectator: it consumes the engine's event stream and draws a
// scrolling hand log with the current board and pot.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/poker"
)

// eventMsg wraps an engine event for the bubbletea update loop.
type eventMsg struct{ event engine.Event }

// Viewer is the bubbletea model. Events arrive on a channel so the game
// can run on its own goroutine.
type Viewer struct {
	logger *log.Logger
	styles Styles
	events chan engine.Event

	vp    viewport.Model
	lines []string

	variant string
	handID  uint64
	board   string

	width, height int
	ready         bool
	quitting      bool
}

// NewViewer creates a viewer. Feed it through OnEvent from a game
// observer registration.
func NewViewer(logger *log.Logger) *Viewer {
	return &Viewer{
		logger: logger.WithPrefix("tui"),
		styles: newStyles(),
		events: make(chan engine.Event, 256),
		vp:     viewport.New(10, 5),
	}
}

// OnEvent implements engine.Observer. Drops events if the viewer has
// fallen behind rather than stalling the table.
func (v *Viewer) OnEvent(e engine.Event) {
	select {
	case v.events <- e:
	default:
	}
}

func (v *Viewer) Init() tea.Cmd {
	return v.nextEvent()
}

func (v *Viewer) nextEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-v.events}
	}
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			v.quitting = true
			return v, tea.Quit
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.vp.Width = msg.Width
		v.vp.Height = msg.Height - 3
		v.ready = true
		v.refresh()
		return v, nil

	case eventMsg:
		v.apply(msg.event)
		return v, v.nextEvent()
	}
	return v, nil
}

// apply folds one event into the display state.
func (v *Viewer) apply(e engine.Event) {
	s := v.styles
	switch ev := e.(type) {
	case engine.HandStarted:
		v.variant = ev.Variant
		v.handID = ev.HandID
		v.board = ""
		v.append(s.Muted.Render(fmt.Sprintf("--- hand #%d (%s), button seat %d ---", ev.HandID, ev.Variant, ev.Button)))
	case engine.ForcedBet:
		v.append(s.Action.Render(fmt.Sprintf("seat %d posts %s %d", ev.Seat, ev.Kind, ev.Amount)))
	case engine.CardsDealt:
		if ev.FaceUp {
			v.append(fmt.Sprintf("seat %d shows %s", ev.Seat, v.renderCards(ev.Cards)))
		} else {
			v.append(s.Muted.Render(fmt.Sprintf("seat %d dealt %d down", ev.Seat, ev.Count)))
		}
	case engine.BoardDealt:
		v.board = poker.CardsString(ev.Board)
		v.append(s.Board.Render("board ") + v.renderCards(ev.Board))
	case engine.ActionTaken:
		line := fmt.Sprintf("seat %d %s", ev.Seat, ev.Action)
		if ev.Amount > 0 {
			line = fmt.Sprintf("%s %d", line, ev.Amount)
		}
		v.append(s.Action.Render(line))
	case engine.DrawTaken:
		v.append(s.Action.Render(fmt.Sprintf("seat %d draws %d", ev.Seat, ev.Count)))
	case engine.ShowdownReveal:
		v.append(s.Showdown.Render(fmt.Sprintf("seat %d shows ", ev.Seat)) +
			v.renderCards(ev.Cards) + s.Showdown.Render(" ("+ev.Desc+")"))
	case engine.PotAwarded:
		v.append(s.Award.Render(fmt.Sprintf("seat %d wins %d", ev.Seat, ev.Amount)))
	case engine.HandEnded:
		v.append("")
	}
	v.refresh()
}

func (v *Viewer) append(line string) {
	v.lines = append(v.lines, line)
	const maxLines = 500
	if len(v.lines) > maxLines {
		v.lines = v.lines[len(v.lines)-maxLines:]
	}
}

func (v *Viewer) refresh() {
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	v.vp.GotoBottom()
}

// renderCards colors red suits red.
func (v *Viewer) renderCards(cards []poker.Card) string {
	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Suit() {
		case poker.Diamonds, poker.Hearts:
			b.WriteString(v.styles.RedCard.Render(c.String()))
		default:
			b.WriteString(v.styles.Card.Render(c.String()))
		}
	}
	return b.String()
}

func (v *Viewer) View() string {
	if v.quitting {
		return ""
	}
	if !v.ready {
		return "loading..."
	}
	header := v.styles.Header.Render(
		fmt.Sprintf("%s  hand #%d  board [%s]", v.variant, v.handID, v.board))
	footer := v.styles.Muted.Render("q to quit")
	return header + "\n" + v.vp.View() + "\n" + footer
}

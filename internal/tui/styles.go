package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles adapt to the terminal background so card colors stay readable on
// both light and dark themes.
type Styles struct {
	Header   lipgloss.Style
	Board    lipgloss.Style
	Action   lipgloss.Style
	Award    lipgloss.Style
	Showdown lipgloss.Style
	Muted    lipgloss.Style
	RedCard  lipgloss.Style
	Card     lipgloss.Style
}

func newStyles() Styles {
	dark := termenv.HasDarkBackground()
	cardColor := lipgloss.Color("#1A1A1A")
	if dark {
		cardColor = lipgloss.Color("#FAFAFA")
	}
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Board: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		Award: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Showdown: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Card: lipgloss.NewStyle().
			Foreground(cardColor).
			Bold(true),
	}
}

// Package report renders a derivation for people: a coloured terminal report
// and a markdown governance summary.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"budget-engine/internal/model"
)

var (
	ragRed   = lipgloss.Color("#e53935")
	ragAmber = lipgloss.Color("#FFC107")
	ragGreen = lipgloss.Color("#8BC34A")
	muted    = lipgloss.Color("#6b7280")
)

// Styles is the set of styles a text report is drawn with.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Red    lipgloss.Style
	Amber  lipgloss.Style
	Green  lipgloss.Style
}

func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Underline(true),
		Header: lipgloss.NewStyle().Bold(true),
		Cell:   lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Red:    badge.Foreground(lipgloss.Color("#ffffff")).Background(ragRed),
		Amber:  badge.Foreground(lipgloss.Color("#000000")).Background(ragAmber),
		Green:  badge.Foreground(lipgloss.Color("#000000")).Background(ragGreen),
	}
}

// Badge renders a RAG label in its colour.
func (s Styles) Badge(label model.RagLabel) string {
	switch label {
	case model.Red:
		return s.Red.Render(string(label))
	case model.Amber:
		return s.Amber.Render(string(label))
	case model.Green:
		return s.Green.Render(string(label))
	}
	return s.Muted.Render("n/a")
}

// Package tui is the terminal front end of the catalog. It drives the same reducer and
// pipeline as the HTTP service from a bubbletea program.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	foreground  = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#f2f2f2"}
	muted       = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	destructive = lipgloss.Color("#e53935")
)

// Styles groups the lipgloss styles the views render with.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Bold     lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(foreground),
		Body:     lipgloss.NewStyle().Foreground(foreground),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Accent:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(destructive),
	}
}

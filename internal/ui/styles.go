package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title   lipgloss.Style
	Stack   lipgloss.Style
	Journal lipgloss.Style
	Spoken  lipgloss.Style
	Queued  lipgloss.Style
	Cue     lipgloss.Style
	Status  lipgloss.Style
	Failure lipgloss.Style
	Help    lipgloss.Style
	Main    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Stack: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Journal: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Spoken:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Queued:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Cue:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:    lipgloss.NewStyle().Faint(true),
		Main:    lipgloss.NewStyle().Padding(1, 2),
	}
}

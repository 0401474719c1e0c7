package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Banner    lipgloss.Style
	Tagline   lipgloss.Style
	Accent    lipgloss.Style
	SearchBox lipgloss.Style
	Heading   lipgloss.Style
	Rank      lipgloss.Style
	Dim       lipgloss.Style
	Error     lipgloss.Style
	Loading   lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Rating    lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Tagline: lipgloss.NewStyle().Bold(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(1),
		Rank:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true), // purple
		Dim:     lipgloss.NewStyle().Faint(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true),
		Rating:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")), // yellow
		Help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}

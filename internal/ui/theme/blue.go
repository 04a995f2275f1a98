package theme

import "github.com/charmbracelet/lipgloss"

// Blue is the default theme, built on the Nord palette
// https://www.nordtheme.com/
var Blue = Theme{
	Name: "blue",

	// Polar Night
	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	// Frost
	Primary:   lipgloss.Color("#88C0D0"),
	Secondary: lipgloss.Color("#81A1C1"),
	Info:      lipgloss.Color("#5E81AC"),

	// Aurora
	Success: lipgloss.Color("#A3BE8C"),
	Warning: lipgloss.Color("#EBCB8B"),
	Error:   lipgloss.Color("#BF616A"),

	PriorityLow:    lipgloss.Color("#A3BE8C"),
	PriorityMedium: lipgloss.Color("#EBCB8B"),
	PriorityHigh:   lipgloss.Color("#D08770"),
	PriorityUrgent: lipgloss.Color("#BF616A"),

	KindClient:   lipgloss.Color("#88C0D0"),
	KindPersonal: lipgloss.Color("#B48EAD"),

	StatusIdle:   lipgloss.Color("#4C566A"),
	StatusActive: lipgloss.Color("#88C0D0"),
	StatusReview: lipgloss.Color("#EBCB8B"),
	StatusDone:   lipgloss.Color("#A3BE8C"),
}

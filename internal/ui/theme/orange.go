package theme

import "github.com/charmbracelet/lipgloss"

// Orange theme on the Gruvbox dark palette
// https://github.com/morhetz/gruvbox
var Orange = Theme{
	Name: "orange",

	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	Primary:   lipgloss.Color("#FE8019"), // Orange
	Secondary: lipgloss.Color("#FABD2F"), // Yellow
	Info:      lipgloss.Color("#83A598"), // Aqua

	Success: lipgloss.Color("#B8BB26"),
	Warning: lipgloss.Color("#FABD2F"),
	Error:   lipgloss.Color("#FB4934"),

	PriorityLow:    lipgloss.Color("#B8BB26"),
	PriorityMedium: lipgloss.Color("#FABD2F"),
	PriorityHigh:   lipgloss.Color("#FE8019"),
	PriorityUrgent: lipgloss.Color("#FB4934"),

	KindClient:   lipgloss.Color("#FE8019"),
	KindPersonal: lipgloss.Color("#8EC07C"),

	StatusIdle:   lipgloss.Color("#928374"),
	StatusActive: lipgloss.Color("#83A598"),
	StatusReview: lipgloss.Color("#D3869B"),
	StatusDone:   lipgloss.Color("#B8BB26"),
}

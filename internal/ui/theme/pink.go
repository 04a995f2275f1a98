package theme

import "github.com/charmbracelet/lipgloss"

// Pink theme on the Catppuccin Mocha palette
// https://github.com/catppuccin/catppuccin
var Pink = Theme{
	Name: "pink",

	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	Primary:   lipgloss.Color("#F5C2E7"), // Pink
	Secondary: lipgloss.Color("#CBA6F7"), // Mauve
	Info:      lipgloss.Color("#74C7EC"), // Sapphire

	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"),
	Error:   lipgloss.Color("#F38BA8"),

	PriorityLow:    lipgloss.Color("#A6E3A1"),
	PriorityMedium: lipgloss.Color("#F9E2AF"),
	PriorityHigh:   lipgloss.Color("#FAB387"), // Peach
	PriorityUrgent: lipgloss.Color("#F38BA8"),

	KindClient:   lipgloss.Color("#F5C2E7"),
	KindPersonal: lipgloss.Color("#89B4FA"),

	StatusIdle:   lipgloss.Color("#6C7086"),
	StatusActive: lipgloss.Color("#89B4FA"),
	StatusReview: lipgloss.Color("#FAB387"),
	StatusDone:   lipgloss.Color("#A6E3A1"),
}

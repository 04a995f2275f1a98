package theme

import "github.com/charmbracelet/lipgloss"

// Purple theme on the Dracula palette
// https://draculatheme.com/
var Purple = Theme{
	Name: "purple",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"),
	Highlight:  lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),

	Primary:   lipgloss.Color("#BD93F9"), // Purple
	Secondary: lipgloss.Color("#FF79C6"), // Pink
	Info:      lipgloss.Color("#8BE9FD"), // Cyan

	Success: lipgloss.Color("#50FA7B"),
	Warning: lipgloss.Color("#F1FA8C"),
	Error:   lipgloss.Color("#FF5555"),

	PriorityLow:    lipgloss.Color("#50FA7B"),
	PriorityMedium: lipgloss.Color("#F1FA8C"),
	PriorityHigh:   lipgloss.Color("#FFB86C"),
	PriorityUrgent: lipgloss.Color("#FF5555"),

	KindClient:   lipgloss.Color("#BD93F9"),
	KindPersonal: lipgloss.Color("#8BE9FD"),

	StatusIdle:   lipgloss.Color("#6272A4"),
	StatusActive: lipgloss.Color("#8BE9FD"),
	StatusReview: lipgloss.Color("#FFB86C"),
	StatusDone:   lipgloss.Color("#50FA7B"),
}

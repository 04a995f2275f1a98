package theme

import "github.com/charmbracelet/lipgloss"

// Green theme on the Everforest dark palette
// https://github.com/sainnhe/everforest
var Green = Theme{
	Name: "green",

	Background: lipgloss.Color("#2D353B"),
	Foreground: lipgloss.Color("#D3C6AA"),
	Subtle:     lipgloss.Color("#859289"),
	Highlight:  lipgloss.Color("#343F44"),
	Border:     lipgloss.Color("#475258"),

	Primary:   lipgloss.Color("#A7C080"), // Green
	Secondary: lipgloss.Color("#83C092"), // Aqua
	Info:      lipgloss.Color("#7FBBB3"), // Blue

	Success: lipgloss.Color("#A7C080"),
	Warning: lipgloss.Color("#DBBC7F"),
	Error:   lipgloss.Color("#E67E80"),

	PriorityLow:    lipgloss.Color("#A7C080"),
	PriorityMedium: lipgloss.Color("#DBBC7F"),
	PriorityHigh:   lipgloss.Color("#E69875"),
	PriorityUrgent: lipgloss.Color("#E67E80"),

	KindClient:   lipgloss.Color("#A7C080"),
	KindPersonal: lipgloss.Color("#D699B6"),

	StatusIdle:   lipgloss.Color("#859289"),
	StatusActive: lipgloss.Color("#7FBBB3"),
	StatusReview: lipgloss.Color("#E69875"),
	StatusDone:   lipgloss.Color("#A7C080"),
}

package ui

import "strings"

// View represents the current active view
type View int

const (
	ViewDashboard View = iota
	ViewTasks
	ViewDue
	ViewCompleted
	ViewInbox
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewTasks:
		return "Tasks"
	case ViewDue:
		return "Due"
	case ViewCompleted:
		return "Completed"
	case ViewInbox:
		return "Inbox"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// ReloadMsg reports that state was re-read from the database outside the TUI,
// typically by the watcher. Raised counts the notifications the re-scan added.
type ReloadMsg struct {
	Reason string
	Raised int
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
	Err       error
}

// ViewByName resolves a view from its display name, case-insensitively
func ViewByName(name string) (View, bool) {
	for v := ViewDashboard; v <= ViewInbox; v++ {
		if strings.EqualFold(v.String(), name) {
			return v, true
		}
	}
	return ViewDashboard, false
}

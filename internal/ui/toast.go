package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/ui/theme"
)

// DefaultToastDuration is how long a toast stays on screen
const DefaultToastDuration = 3 * time.Second

const maxToasts = 3

type toast struct {
	id       int
	text     string
	severity model.Severity
}

// toastExpiredMsg removes the toast with the given id
type toastExpiredMsg struct {
	id int
}

// Toasts is a short stack of transient messages that dismiss themselves
type Toasts struct {
	items []toast
	next  int
	ttl   time.Duration
}

// NewToasts creates an empty stack with the given lifetime per toast
func NewToasts(ttl time.Duration) Toasts {
	if ttl <= 0 {
		ttl = DefaultToastDuration
	}
	return Toasts{ttl: ttl}
}

// Push shows a toast and returns the command that expires it
func (t Toasts) Push(text string, severity model.Severity) (Toasts, tea.Cmd) {
	t.next++
	id := t.next
	t.items = append(append([]toast(nil), t.items...), toast{id: id, text: text, severity: severity})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
	return t, tea.Tick(t.ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Expire removes a toast. Unknown ids are ignored.
func (t Toasts) Expire(id int) Toasts {
	for i, item := range t.items {
		if item.id == id {
			items := make([]toast, 0, len(t.items)-1)
			items = append(items, t.items[:i]...)
			t.items = append(items, t.items[i+1:]...)
			return t
		}
	}
	return t
}

// Len returns the number of visible toasts
func (t Toasts) Len() int {
	return len(t.items)
}

// View renders the visible toasts, newest last
func (t Toasts) View() string {
	if len(t.items) == 0 {
		return ""
	}
	th := theme.Current.Theme
	styles := theme.Current.Styles

	var lines []string
	for _, item := range t.items {
		color := th.SeverityColor(item.severity)
		lines = append(lines, styles.Toast.
			BorderForeground(color).
			Foreground(color).
			Render(item.text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}

// Height returns the number of terminal lines View occupies
func (t Toasts) Height() int {
	v := t.View()
	if v == "" {
		return 0
	}
	return strings.Count(v, "\n") + 1
}

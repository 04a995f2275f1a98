package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/ui/theme"
)

// InboxSection selects the notification log or the message inbox
type InboxSection int

const (
	SectionNotifications InboxSection = iota
	SectionMessages
)

// InboxView shows notifications and messages with read state
type InboxView struct {
	app    *app.App
	width  int
	height int

	section       InboxSection
	notifications []model.Notification
	messages      []model.Message
	cursor        int
	open          bool
}

type inboxLoadedMsg struct {
	notifications []model.Notification
	messages      []model.Message
}

// NewInboxView creates a new inbox view
func NewInboxView(a *app.App) InboxView {
	return InboxView{app: a}
}

// Init initializes the inbox view
func (v InboxView) Init() tea.Cmd {
	a := v.app
	return func() tea.Msg {
		return inboxLoadedMsg{notifications: a.Notifications.All(), messages: a.Messages.All()}
	}
}

// SetSize sets the view dimensions
func (v InboxView) SetSize(width, height int) InboxView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether the view is in input mode
func (v InboxView) IsInputMode() bool {
	return false
}

func (v InboxView) count() int {
	if v.section == SectionMessages {
		return len(v.messages)
	}
	return len(v.notifications)
}

// Update handles messages
func (v InboxView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inboxLoadedMsg:
		v.notifications = msg.notifications
		v.messages = msg.messages
		v.cursor = clampCursor(v.cursor, v.count())
		return v, nil

	case tea.KeyMsg:
		a := v.app
		switch msg.String() {
		case "tab", "h", "l":
			v.section = 1 - v.section
			v.cursor = 0
			v.open = false
		case "j", "down":
			v.cursor = clampCursor(v.cursor+1, v.count())
			v.open = false
		case "k", "up":
			v.cursor = clampCursor(v.cursor-1, v.count())
			v.open = false
		case "enter":
			v.open = !v.open
			if id, ok := v.selectedID(); ok {
				return v, v.markRead(id)
			}
		case "r":
			if id, ok := v.selectedID(); ok {
				return v, v.markRead(id)
			}
		case "R":
			section := v.section
			return v, mutate(a, func() (string, error) {
				if section == SectionMessages {
					a.Messages.MarkAllRead()
				} else {
					a.Notifications.MarkAllRead()
				}
				return "Marked all as read", nil
			})
		case "d":
			if id, ok := v.selectedID(); ok {
				section := v.section
				return v, mutate(a, func() (string, error) {
					if section == SectionMessages {
						a.Messages.Delete(id)
					} else {
						a.Notifications.Delete(id)
					}
					return "Deleted", nil
				})
			}
		case "C":
			section := v.section
			return v, mutate(a, func() (string, error) {
				if section == SectionMessages {
					a.Messages.Clear()
					return "Cleared messages", nil
				}
				a.Notifications.Clear()
				return "Cleared notifications", nil
			})
		}
	}
	return v, nil
}

func (v InboxView) selectedID() (int64, bool) {
	if v.section == SectionMessages {
		if v.cursor < len(v.messages) {
			return v.messages[v.cursor].ID, true
		}
		return 0, false
	}
	if v.cursor < len(v.notifications) {
		return v.notifications[v.cursor].ID, true
	}
	return 0, false
}

func (v InboxView) markRead(id int64) tea.Cmd {
	a, section := v.app, v.section
	return func() tea.Msg {
		if section == SectionMessages {
			a.Messages.MarkRead(id)
		} else {
			a.Notifications.MarkRead(id)
		}
		return ChangedMsg{}
	}
}

// View renders the inbox
func (v InboxView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}
	t := theme.Current.Theme
	styles := theme.Current.Styles

	unreadN, unreadM := 0, 0
	for _, n := range v.notifications {
		if !n.Read {
			unreadN++
		}
	}
	for _, m := range v.messages {
		if !m.Read {
			unreadM++
		}
	}

	tab := func(label string, unread int, active bool) string {
		text := label
		if unread > 0 {
			text = fmt.Sprintf("%s (%d)", label, unread)
		}
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(t.Subtle)
		if active {
			style = style.Foreground(t.Primary).Bold(true).Underline(true)
		}
		return style.Render(text)
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		tab("Notifications", unreadN, v.section == SectionNotifications),
		tab("Messages", unreadM, v.section == SectionMessages),
	))
	b.WriteString("\n\n")

	marker := func(read bool) string {
		if read {
			return "  "
		}
		return lipgloss.NewStyle().Foreground(t.Primary).Render("● ")
	}
	row := func(line string, isCursor bool) string {
		style := styles.TaskNormal
		if isCursor {
			style = styles.TaskSelected
		}
		return style.MaxWidth(v.width).Render(line)
	}

	if v.section == SectionNotifications {
		if len(v.notifications) == 0 {
			b.WriteString(emptyState("No notifications."))
			return b.String()
		}
		start, end := scrollWindow(v.cursor, len(v.notifications), v.height-4)
		for i := start; i < end; i++ {
			n := v.notifications[i]
			title := lipgloss.NewStyle().Foreground(t.SeverityColor(n.Type)).Bold(!n.Read).Render(n.Title)
			line := marker(n.Read) + title + " " + styles.Label.Render(n.Date.Local().Format("Jan 2 15:04"))
			b.WriteString(row(line, i == v.cursor))
			b.WriteString("\n")
			if v.open && i == v.cursor {
				b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Width(v.width - 4).Render(n.Message))
				b.WriteString("\n")
			} else {
				b.WriteString(styles.Label.MaxWidth(v.width).Render("    " + n.Message))
				b.WriteString("\n")
			}
		}
		return strings.TrimRight(b.String(), "\n")
	}

	if len(v.messages) == 0 {
		b.WriteString(emptyState("No messages."))
		return b.String()
	}
	start, end := scrollWindow(v.cursor, len(v.messages), v.height-4)
	for i := start; i < end; i++ {
		m := v.messages[i]
		subject := lipgloss.NewStyle().Bold(!m.Read).Render(m.Subject)
		line := marker(m.Read) + subject + styles.Label.Render(fmt.Sprintf(" from %s · %s", m.From, m.Date.Local().Format("Jan 2")))
		b.WriteString(row(line, i == v.cursor))
		b.WriteString("\n")
		if v.open && i == v.cursor {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Width(v.width - 4).Render(m.Body))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

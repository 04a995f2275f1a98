package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/kairo/internal/app"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/quickadd"
	"github.com/dori/kairo/internal/ui/theme"
)

// ChangedMsg is emitted after a view mutated state. Status is shown as a
// toast and Raised counts the notifications the follow-up re-scan added.
type ChangedMsg struct {
	Status   string
	Severity model.Severity
	Raised   int
}

// FailedMsg carries an error from a view command
type FailedMsg struct {
	Err error
}

// mutate runs fn against the application and reports the outcome
func mutate(a *app.App, fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		before := a.Notifications.UnreadCount()
		status, err := fn()
		if err != nil {
			return FailedMsg{Err: err}
		}
		raised := a.Notifications.UnreadCount() - before
		if raised < 0 {
			raised = 0
		}
		return ChangedMsg{Status: status, Severity: model.SeveritySuccess, Raised: raised}
	}
}

// clampCursor keeps a selection index inside [0, n)
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// scrollWindow returns the slice bounds that keep cursor visible in height rows
func scrollWindow(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

// priorityBadge renders a fixed-width priority marker
func priorityBadge(p model.Priority) string {
	t := theme.Current.Theme
	label := "    "
	switch p {
	case model.PriorityUrgent:
		label = "!!!!"
	case model.PriorityHigh:
		label = "!!! "
	case model.PriorityMedium:
		label = "!!  "
	case model.PriorityLow:
		label = "!   "
	}
	return lipgloss.NewStyle().Foreground(t.PriorityColor(p)).Bold(true).Render(label)
}

// renderTask renders one task row for the list views
func renderTask(task model.Task, today model.Date, isCursor bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	check := "[ ]"
	if task.IsCompleted() {
		check = "[x]"
	}

	var parts []string
	parts = append(parts, check, priorityBadge(task.Priority))

	name := task.Name()
	if task.Kind == model.KindClient && task.ClientName != "" && task.ClientName != name {
		name = fmt.Sprintf("%s · %s", name, task.ClientName)
	}
	parts = append(parts, name)

	kind := lipgloss.NewStyle().Foreground(t.KindColor(task.Kind)).Render(string(task.Kind))
	parts = append(parts, kind)

	status := lipgloss.NewStyle().Foreground(t.StatusColor(task.Status)).Render(string(task.Status))
	parts = append(parts, status)

	if task.DueDate != nil {
		due := quickadd.FormatDue(*task.DueDate, today)
		if !task.IsCompleted() && task.DueDate.Before(today) {
			parts = append(parts, lipgloss.NewStyle().Foreground(t.Error).Render("overdue "+due))
		} else {
			parts = append(parts, styles.DueDate.Render(due))
		}
	}

	if task.HasPayment() {
		owed := task.Outstanding()
		if owed.IsZero() {
			parts = append(parts, styles.Money.Render("paid"))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(t.Warning).Render(owed.Humanize()+" due"))
		}
	}

	for _, tag := range task.Tags {
		parts = append(parts, styles.Label.Render("@"+tag))
	}

	line := strings.Join(parts, " ")

	var style lipgloss.Style
	switch {
	case isCursor:
		style = styles.TaskSelected
	case task.IsCompleted():
		style = styles.TaskDone
	default:
		style = styles.TaskNormal
	}
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(line)
}

// renderDetail renders the expanded fields of the selected task
func renderDetail(task model.Task) string {
	styles := theme.Current.Styles
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, styles.Label.Render(label+": ")+value)
		}
	}
	add("id", fmt.Sprintf("%d", task.ID))
	add("client", task.ClientName)
	add("category", task.Category)
	add("description", task.Description)
	add("files", task.Files)
	if task.StartDate != nil {
		add("start", task.StartDate.String())
	}
	if task.HasPayment() {
		add("payment", fmt.Sprintf("%s of %s paid (%d%%)",
			task.Paid().Humanize(), task.Total().Humanize(), task.PaymentProgress))
	}
	add("progress", fmt.Sprintf("%d%%", task.Status.Progress()))
	return lipgloss.NewStyle().PaddingLeft(6).Render(strings.Join(lines, "\n"))
}

// emptyState renders a placeholder for an empty list
func emptyState(text string) string {
	return theme.Current.Styles.Label.Render("  " + text)
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/quickadd"
	"github.com/dori/kairo/internal/ui/theme"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// renderTable renders rows under a header with the current theme's border
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Current.Theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Foreground(theme.Current.Theme.Primary)
			}
			return cellStyle
		})
	return t.Render()
}

func taskRows(tasks []model.Task, today model.Date) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = quickadd.FormatDue(*t.DueDate, today)
		}
		owed := ""
		if t.HasPayment() {
			owed = t.Outstanding().Humanize()
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			string(t.Kind),
			t.Name(),
			t.ClientName,
			string(t.Status),
			string(t.Priority),
			due,
			owed,
			strings.Join(t.Tags, ","),
		})
	}
	return rows
}

func renderTasks(tasks []model.Task, today model.Date) string {
	return renderTable(
		[]string{"ID", "Kind", "Name", "Client", "Status", "Priority", "Due", "Outstanding", "Tags"},
		taskRows(tasks, today),
	)
}

// describeTask prints the one-line summary used after a mutation
func describeTask(t model.Task, today model.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (id %d)\n", t.Name(), t.ID)
	if t.ClientName != "" && t.ClientName != t.Name() {
		fmt.Fprintf(&b, "Client: %s\n", t.ClientName)
	}
	fmt.Fprintf(&b, "Status: %s (%d%%)\n", t.Status, t.Status.Progress())
	fmt.Fprintf(&b, "Priority: %s\n", t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&b, "Due: %s\n", quickadd.FormatDue(*t.DueDate, today))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	if t.HasPayment() {
		fmt.Fprintf(&b, "Payment: %s of %s paid, %s outstanding (%d%%)\n",
			t.Paid().Humanize(), t.Total().Humanize(), t.Outstanding().Humanize(), t.PaymentProgress)
	}
	return b.String()
}

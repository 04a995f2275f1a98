// Package notify raises due-date and payment notifications for tasks and
// delivers them to the desktop.
package notify

import (
	"fmt"
	"strings"

	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/urgency"
)

// Scan returns the notifications to emit for the given tasks. It does not
// modify existing; the caller appends the result to the log.
//
// At most one unread notification exists per task and category: a task that
// already has an unread notification for a condition is skipped.
func Scan(tasks []model.Task, existing []model.Notification, settings model.NotificationSettings, today model.Date) []model.Notification {
	var out []model.Notification

	live := func(t *model.Task, c model.Category) bool {
		return hasUnread(existing, t, c) || hasUnread(out, t, c)
	}

	for i := range tasks {
		t := &tasks[i]

		if !t.IsCompleted() {
			days, ok := urgency.DaysUntilDue(t, today)
			if !ok {
				continue
			}
			switch {
			case days < 0 && settings.Overdue:
				if !live(t, model.CategoryOverdue) {
					out = append(out, ForTask(t, model.CategoryOverdue, model.SeverityError,
						fmt.Sprintf("%q is %d day(s) overdue", t.Name(), -days)))
				}
			case days == 0 && settings.Upcoming:
				if !live(t, model.CategoryDueToday) {
					out = append(out, ForTask(t, model.CategoryDueToday, model.SeverityWarning,
						fmt.Sprintf("%q is due today", t.Name())))
				}
			case days > 0 && days <= urgency.DueSoonDays && settings.Upcoming:
				if !live(t, model.CategoryDueSoon) {
					out = append(out, ForTask(t, model.CategoryDueSoon, model.SeverityWarning,
						fmt.Sprintf("%q is due in %d day(s)", t.Name(), days)))
				}
			}
			continue
		}

		if settings.Payments && t.HasPayment() && t.Outstanding().Minor > 0 {
			if !live(t, model.CategoryPayment) {
				out = append(out, ForTask(t, model.CategoryPayment, model.SeverityWarning,
					fmt.Sprintf("%q is completed but has outstanding payment of %s", t.Name(), t.OutstandingAmount)))
			}
		}
	}

	return out
}

// ForTask builds an unsaved notification keyed to a task and category
func ForTask(t *model.Task, c model.Category, severity model.Severity, message string) model.Notification {
	return model.Notification{
		Title:    c.Title(),
		Message:  message,
		Type:     severity,
		TaskID:   t.ID,
		Category: c,
	}
}

// hasUnread reports whether log holds an unread notification for the task and
// category. Entries written before notifications carried a task key are
// matched on title and task name instead.
func hasUnread(log []model.Notification, t *model.Task, c model.Category) bool {
	for i := range log {
		n := &log[i]
		if n.Read {
			continue
		}
		if n.Category != "" {
			if n.TaskID == t.ID && n.Category == c {
				return true
			}
			continue
		}
		if strings.Contains(n.Title, legacyTitle(c)) && t.Name() != "" && strings.Contains(n.Message, t.Name()) {
			return true
		}
	}
	return false
}

func legacyTitle(c model.Category) string {
	switch c {
	case model.CategoryOverdue:
		return "Overdue"
	case model.CategoryDueToday:
		return "Due Today"
	case model.CategoryDueSoon:
		return "Due Soon"
	case model.CategoryPayment:
		return "Payment Pending"
	default:
		return c.Title()
	}
}

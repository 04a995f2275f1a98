// Package urgency derives effective task priority from due dates and orders
// task collections by urgency.
package urgency

import (
	"github.com/dori/kairo/internal/model"
)

// DueSoonDays is the inclusive window, in calendar days, counted as due soon
const DueSoonDays = 3

// DaysUntilDue returns the calendar days from today to the task's due date.
// ok is false when the task has no due date.
func DaysUntilDue(t *model.Task, today model.Date) (days int, ok bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return 0, false
	}
	return today.DaysUntil(*t.DueDate), true
}

// Derive returns the effective priority of a task.
//
// Overdue and due-today tasks are Urgent, tasks due within two days are High.
// Derivation only raises priority: a stored value already above the derived
// one is kept, and Completed tasks keep their stored priority.
func Derive(t *model.Task, today model.Date) model.Priority {
	if t.IsCompleted() {
		return t.Priority
	}
	days, ok := DaysUntilDue(t, today)
	if !ok {
		return t.Priority
	}

	var derived model.Priority
	switch {
	case days <= 0:
		derived = model.PriorityUrgent
	case days <= 2:
		derived = model.PriorityHigh
	default:
		return t.Priority
	}

	if t.Priority.Rank() > derived.Rank() {
		return t.Priority
	}
	return derived
}

// IsOverdue returns true if the task is not completed and its due date is
// before today
func IsOverdue(t *model.Task, today model.Date) bool {
	if t.IsCompleted() {
		return false
	}
	days, ok := DaysUntilDue(t, today)
	return ok && days < 0
}

// IsDueSoon returns true if the task is not completed and due within
// DueSoonDays, today included
func IsDueSoon(t *model.Task, today model.Date) bool {
	if t.IsCompleted() {
		return false
	}
	days, ok := DaysUntilDue(t, today)
	return ok && days >= 0 && days <= DueSoonDays
}

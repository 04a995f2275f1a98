package urgency

import (
	"slices"

	"github.com/dori/kairo/internal/model"
)

// Overdue returns the open tasks whose due date has passed, most urgent first
func Overdue(tasks []model.Task, today model.Date) []model.Task {
	return Sort(filter(tasks, func(t *model.Task) bool { return IsOverdue(t, today) }), today)
}

// DueSoon returns the open tasks due within DueSoonDays, most urgent first
func DueSoon(tasks []model.Task, today model.Date) []model.Task {
	return Sort(filter(tasks, func(t *model.Task) bool { return IsDueSoon(t, today) }), today)
}

// Completed returns completed tasks, most recently completed first
func Completed(tasks []model.Task) []model.Task {
	done := filter(tasks, func(t *model.Task) bool { return t.IsCompleted() })
	slices.SortStableFunc(done, func(a, b model.Task) int {
		switch {
		case a.CompletedAt == nil && b.CompletedAt == nil:
			return 0
		case a.CompletedAt == nil:
			return 1
		case b.CompletedAt == nil:
			return -1
		default:
			return b.CompletedAt.Compare(*a.CompletedAt)
		}
	})
	return done
}

func filter(tasks []model.Task, keep func(*model.Task) bool) []model.Task {
	var out []model.Task
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// Stats summarizes a task collection for dashboards
type Stats struct {
	Total      int
	Completed  int
	Overdue    int
	DueSoon    int
	InProgress int
	NotStarted int
}

// Summarize counts tasks by state
func Summarize(tasks []model.Task, today model.Date) Stats {
	var s Stats
	for i := range tasks {
		t := &tasks[i]
		s.Total++
		switch t.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusNotStarted:
			s.NotStarted++
		default:
			s.InProgress++
		}
		if IsOverdue(t, today) {
			s.Overdue++
		}
		if IsDueSoon(t, today) {
			s.DueSoon++
		}
	}
	return s
}

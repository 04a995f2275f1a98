package urgency

import (
	"testing"
	"time"

	"github.com/dori/kairo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = model.NewDate(2026, time.March, 10)

func due(days int) *model.Date {
	d := today.AddDays(days)
	return &d
}

func created(minutes int) *time.Time {
	t := time.Date(2026, time.March, 1, 9, minutes, 0, 0, time.UTC)
	return &t
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name   string
		task   model.Task
		expect model.Priority
	}{
		{"no due date keeps stored", model.Task{Status: model.StatusStarted, Priority: model.PriorityLow}, model.PriorityLow},
		{"overdue", model.Task{Status: model.StatusStarted, Priority: model.PriorityLow, DueDate: due(-1)}, model.PriorityUrgent},
		{"long overdue", model.Task{Status: model.StatusNotStarted, Priority: model.PriorityMedium, DueDate: due(-40)}, model.PriorityUrgent},
		{"due today", model.Task{Status: model.StatusReview, Priority: model.PriorityLow, DueDate: due(0)}, model.PriorityUrgent},
		{"due tomorrow", model.Task{Status: model.StatusStarted, Priority: model.PriorityLow, DueDate: due(1)}, model.PriorityHigh},
		{"due in two days", model.Task{Status: model.StatusStarted, Priority: model.PriorityMedium, DueDate: due(2)}, model.PriorityHigh},
		{"due in three days keeps stored", model.Task{Status: model.StatusStarted, Priority: model.PriorityLow, DueDate: due(3)}, model.PriorityLow},
		{"never downgrades urgent", model.Task{Status: model.StatusStarted, Priority: model.PriorityUrgent, DueDate: due(2)}, model.PriorityUrgent},
		{"completed overdue keeps stored", model.Task{Status: model.StatusCompleted, Priority: model.PriorityLow, DueDate: due(-5)}, model.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Derive(&tt.task, today))
		})
	}
}

func TestDeriveOverdueIsAlwaysUrgent(t *testing.T) {
	for _, status := range model.Statuses() {
		if status == model.StatusCompleted {
			continue
		}
		for _, p := range model.Priorities() {
			for days := -30; days < 0; days++ {
				task := model.Task{Status: status, Priority: p, DueDate: due(days)}
				require.Equal(t, model.PriorityUrgent, Derive(&task, today), "status=%s priority=%s days=%d", status, p, days)
			}
		}
	}
}

func TestDeriveCompletedIsUnchanged(t *testing.T) {
	for _, p := range append(model.Priorities(), model.Priority("")) {
		for days := -5; days <= 5; days++ {
			task := model.Task{Status: model.StatusCompleted, Priority: p, DueDate: due(days)}
			require.Equal(t, p, Derive(&task, today))
		}
	}
}

func TestSortCompletedLast(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, ProjectName: "done yesterday", Status: model.StatusCompleted, Priority: model.PriorityUrgent, DueDate: due(-1)},
		{ID: 2, ProjectName: "tomorrow", Status: model.StatusNotStarted, Priority: model.PriorityLow, DueDate: due(1)},
	}

	sorted := Sort(tasks, today)
	require.Len(t, sorted, 2)
	assert.Equal(t, int64(2), sorted[0].ID)
	assert.Equal(t, int64(1), sorted[1].ID)
}

func TestSortTieBreakChain(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Status: model.StatusStarted, Priority: model.PriorityLow, CreatedAt: created(1)},
		{ID: 2, Status: model.StatusStarted, Priority: model.PriorityLow, DueDate: due(10), CreatedAt: created(2)},
		{ID: 3, Status: model.StatusStarted, Priority: model.PriorityLow, DueDate: due(5), CreatedAt: created(3)},
		{ID: 4, Status: model.StatusStarted, Priority: model.PriorityLow, CreatedAt: created(4)},
		{ID: 5, Status: model.StatusStarted, Priority: model.PriorityHigh, CreatedAt: created(5)},
		{ID: 6, Status: model.StatusStarted, Priority: model.PriorityLow, DueDate: due(0), CreatedAt: created(6)},
		{ID: 7, Status: model.StatusStarted, Priority: "Someday", CreatedAt: created(7)},
		{ID: 8, Status: model.StatusCompleted, Priority: model.PriorityUrgent, CreatedAt: created(8)},
	}

	var ids []int64
	for _, task := range Sort(tasks, today) {
		ids = append(ids, task.ID)
	}
	// 6 derives Urgent, 5 is High, then the Low tasks by due date, then the
	// undated Low tasks newest first, then the unknown priority, then done.
	assert.Equal(t, []int64{6, 5, 3, 2, 4, 1, 7, 8}, ids)
}

func TestSortFallsBackToID(t *testing.T) {
	tasks := []model.Task{
		{ID: 100, Status: model.StatusStarted, Priority: model.PriorityMedium},
		{ID: 300, Status: model.StatusStarted, Priority: model.PriorityMedium},
		{ID: 200, Status: model.StatusStarted, Priority: model.PriorityMedium},
	}

	sorted := Sort(tasks, today)
	assert.Equal(t, int64(300), sorted[0].ID)
	assert.Equal(t, int64(200), sorted[1].ID)
	assert.Equal(t, int64(100), sorted[2].ID)
}

func TestSortIsIdempotentAndNonDestructive(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Status: model.StatusCompleted, Priority: model.PriorityHigh, DueDate: due(-3)},
		{ID: 2, Status: model.StatusNotStarted, Priority: model.PriorityLow, DueDate: due(7)},
		{ID: 3, Status: model.StatusProcessing, Priority: model.PriorityMedium},
		{ID: 4, Status: model.StatusReview, Priority: model.PriorityLow, DueDate: due(1)},
		{ID: 5, Status: model.StatusCompleted, Priority: model.PriorityLow},
		{ID: 6, Status: model.StatusStarted, Priority: model.PriorityMedium, DueDate: due(7)},
	}
	before := append([]model.Task(nil), tasks...)

	once := Sort(tasks, today)
	twice := Sort(once, today)

	assert.Equal(t, once, twice)
	assert.Equal(t, before, tasks)
}

func TestSortCompletedAlwaysAfterOpen(t *testing.T) {
	var tasks []model.Task
	id := int64(1)
	for _, status := range model.Statuses() {
		for _, p := range model.Priorities() {
			for _, d := range []*model.Date{nil, due(-2), due(0), due(4)} {
				tasks = append(tasks, model.Task{ID: id, Status: status, Priority: p, DueDate: d})
				id++
			}
		}
	}

	sorted := Sort(tasks, today)
	seenCompleted := false
	for _, task := range sorted {
		if task.IsCompleted() {
			seenCompleted = true
			continue
		}
		require.False(t, seenCompleted, "open task %d sorted after a completed task", task.ID)
	}
}

func TestFilters(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Status: model.StatusStarted, DueDate: due(-2)},
		{ID: 2, Status: model.StatusStarted, DueDate: due(0)},
		{ID: 3, Status: model.StatusStarted, DueDate: due(3)},
		{ID: 4, Status: model.StatusStarted, DueDate: due(4)},
		{ID: 5, Status: model.StatusCompleted, DueDate: due(-2)},
		{ID: 6, Status: model.StatusNotStarted},
	}

	overdue := Overdue(tasks, today)
	require.Len(t, overdue, 1)
	assert.Equal(t, int64(1), overdue[0].ID)

	soon := DueSoon(tasks, today)
	require.Len(t, soon, 2)
	assert.Equal(t, int64(2), soon[0].ID)
	assert.Equal(t, int64(3), soon[1].ID)

	stats := Summarize(tasks, today)
	assert.Equal(t, Stats{Total: 6, Completed: 1, Overdue: 1, DueSoon: 2, InProgress: 4, NotStarted: 1}, stats)
}

func TestCompletedOrder(t *testing.T) {
	early := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)
	tasks := []model.Task{
		{ID: 1, Status: model.StatusCompleted},
		{ID: 2, Status: model.StatusCompleted, CompletedAt: &early},
		{ID: 3, Status: model.StatusStarted},
		{ID: 4, Status: model.StatusCompleted, CompletedAt: &late},
	}

	done := Completed(tasks)
	require.Len(t, done, 3)
	assert.Equal(t, []int64{4, 2, 1}, []int64{done[0].ID, done[1].ID, done[2].ID})
}

package urgency

import (
	"cmp"
	"slices"

	"github.com/dori/kairo/internal/model"
)

// Sort returns a new slice ordered by urgency. The input is not modified.
//
// Order: open tasks before completed ones; among open tasks, higher derived
// priority first; then earlier due date, with dated tasks before undated
// ones; then newest first by creation time (or id when that is missing).
func Sort(tasks []model.Task, today model.Date) []model.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b model.Task) int {
		return Compare(&a, &b, today)
	})
	return sorted
}

// Compare orders two tasks by urgency, returning a negative number when a
// sorts before b
func Compare(a, b *model.Task, today model.Date) int {
	aDone, bDone := a.IsCompleted(), b.IsCompleted()
	if aDone != bDone {
		if aDone {
			return 1
		}
		return -1
	}

	if !aDone {
		if c := cmp.Compare(Derive(b, today).Rank(), Derive(a, today).Rank()); c != 0 {
			return c
		}
	}

	if c := compareDue(a.DueDate, b.DueDate); c != 0 {
		return c
	}

	return cmp.Compare(b.SortKey(), a.SortKey())
}

func compareDue(a, b *model.Date) int {
	aHas := a != nil && !a.IsZero()
	bHas := b != nil && !b.IsZero()
	switch {
	case aHas && bHas:
		return a.Time().Compare(b.Time())
	case aHas:
		return -1
	case bHas:
		return 1
	default:
		return 0
	}
}

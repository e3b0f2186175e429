package task

import (
	"cmp"
	"slices"
)

// Compare orders tasks by priority rank, then due date ascending with
// undated tasks last, then creation time.
func Compare(a, b Task) int {
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return -1
	case a.DueDate == nil && b.DueDate != nil:
		return 1
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(b.DueDate.Time); c != 0 {
			return c
		}
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

// Sort orders tasks in place using Compare.
func Sort(tasks []Task) {
	slices.SortStableFunc(tasks, Compare)
}

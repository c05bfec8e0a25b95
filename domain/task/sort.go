package task

import "sort"

// Sort orders a task sequence. Like filters, sorts are a closed set
// with an explicit fallback for unknown keys.
type Sort string

const (
	// SortDeadline orders by deadline ascending.
	SortDeadline Sort = "deadline"
	// SortPriority orders high before medium before low.
	SortPriority Sort = "priority"
	// SortCreated orders by creation time, newest first.
	SortCreated Sort = "created"
)

// ParseSort maps a raw key to a Sort, falling back to SortDeadline
// for anything unrecognized.
func ParseSort(key string) Sort {
	switch Sort(key) {
	case SortPriority, SortCreated:
		return Sort(key)
	default:
		return SortDeadline
	}
}

// Apply returns a new ordering of the tasks. The sort is stable, so
// equal elements keep their relative input order, and the input slice
// itself is never reordered.
func (s Sort) Apply(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	switch s {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.rank() < out[j].Priority.rank()
		})
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortDeadline:
		fallthrough
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Deadline.Before(out[j].Deadline)
		})
	}
	return out
}

package task

import "time"

// Filter selects a subset of tasks. Filters are a closed set; unknown
// keys fall back to FilterAll rather than failing.
type Filter string

const (
	// FilterAll keeps every task.
	FilterAll Filter = "all"
	// FilterCompleted keeps completed tasks.
	FilterCompleted Filter = "completed"
	// FilterNotCompleted keeps tasks still to do.
	FilterNotCompleted Filter = "notCompleted"
	// FilterHighPriority keeps high priority tasks.
	FilterHighPriority Filter = "highPriority"
	// FilterOverdue keeps uncompleted tasks past their deadline.
	FilterOverdue Filter = "overdue"
)

// ParseFilter maps a raw key to a Filter, falling back to FilterAll
// for anything unrecognized.
func ParseFilter(key string) Filter {
	switch Filter(key) {
	case FilterCompleted, FilterNotCompleted, FilterHighPriority, FilterOverdue:
		return Filter(key)
	default:
		return FilterAll
	}
}

// Apply returns the tasks matching the filter. The input is never
// modified; the result preserves input order. The current time is a
// parameter so overdue checks stay deterministic under test.
func (f Filter) Apply(tasks []Task, now time.Time) []Task {
	keep := func(Task) bool { return true }

	switch f {
	case FilterCompleted:
		keep = func(t Task) bool { return t.Status == StatusCompleted }
	case FilterNotCompleted:
		keep = func(t Task) bool { return t.Status != StatusCompleted }
	case FilterHighPriority:
		keep = func(t Task) bool { return t.Priority == PriorityHigh }
	case FilterOverdue:
		keep = func(t Task) bool { return t.Overdue(now) }
	case FilterAll:
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

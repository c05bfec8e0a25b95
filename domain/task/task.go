package task

import (
	"strings"
	"time"
)

// Priority represents the urgency of a task.
type Priority string

const (
	// PriorityHigh marks a task as urgent.
	PriorityHigh Priority = "high"
	// PriorityMedium is the middle priority level.
	PriorityMedium Priority = "medium"
	// PriorityLow marks a task as non-urgent.
	PriorityLow Priority = "low"
)

// ParsePriority converts a raw string to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case "":
		return "", &ValidationError{Field: "priority", Reason: "is required"}
	default:
		return "", &ValidationError{Field: "priority", Reason: "must be high, medium or low"}
	}
}

// rank orders priorities for sorting, high first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Status represents the completion state of a task.
type Status string

const (
	// StatusTodo is the initial state of every task.
	StatusTodo Status = "todo"
	// StatusCompleted marks a task as done.
	StatusCompleted Status = "completed"
)

// ParseStatus converts a raw string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusTodo:
		return StatusTodo, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", &ValidationError{Field: "status", Reason: "must be todo or completed"}
	}
}

// Task is a single trackable to-do item. Tasks are value records;
// identity is carried by ID, which is generated once and never changes.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Deadline    time.Time `json:"deadline"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Overdue reports whether the task is past its deadline and not completed.
func (t Task) Overdue(now time.Time) bool {
	return t.Status != StatusCompleted && t.Deadline.Before(now)
}

// Record is the persisted form of a task. It mirrors Task field for
// field; keeping it separate lets the storage layer evolve without
// leaking into the domain type.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record converts the task to its persisted form.
func (t Task) Record() Record {
	return Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

package task

import (
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
)

// idSuffixLength keeps generated IDs short while leaving collision
// probability negligible for interactive use.
const idSuffixLength = 8

var newSuffix func() string

func init() {
	gen, err := nanoid.Standard(idSuffixLength)
	if err != nil {
		panic(fmt.Sprintf("task: init id generator: %v", err))
	}
	newSuffix = gen
}

// newID generates an identifier unique within the process lifetime:
// a millisecond timestamp followed by a random suffix. Not
// cryptographically unique, and not meant to be.
func newID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), newSuffix())
}

// New constructs a fresh task with a generated ID, CreatedAt set to
// the current time and status todo. All construction goes through
// here or FromRecord so validation cannot be bypassed.
func New(title, description string, deadline time.Time, priority Priority) (Task, error) {
	if err := validateFields(title, deadline, priority); err != nil {
		return Task{}, err
	}

	now := time.Now()
	return Task{
		ID:          newID(now),
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Priority:    priority,
		Status:      StatusTodo,
		CreatedAt:   now,
	}, nil
}

// FromRecord reconstructs a task from its persisted form, preserving
// the stored ID, status and creation time exactly. Field validation
// matches New.
func FromRecord(rec Record) (Task, error) {
	priority, err := ParsePriority(rec.Priority)
	if err != nil {
		return Task{}, err
	}
	status, err := ParseStatus(rec.Status)
	if err != nil {
		return Task{}, err
	}
	if err := validateFields(rec.Title, rec.Deadline, priority); err != nil {
		return Task{}, err
	}
	if rec.ID == "" {
		return Task{}, &ValidationError{Field: "id", Reason: "is required"}
	}
	if rec.CreatedAt.IsZero() {
		return Task{}, &ValidationError{Field: "created_at", Reason: "is required"}
	}

	return Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Deadline:    rec.Deadline,
		Priority:    priority,
		Status:      status,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

func validateFields(title string, deadline time.Time, priority Priority) error {
	if title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if deadline.IsZero() {
		return &ValidationError{Field: "deadline", Reason: "is required"}
	}
	if priority.rank() > PriorityLow.rank() {
		return &ValidationError{Field: "priority", Reason: "must be high, medium or low"}
	}
	return nil
}

package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	before := time.Now()
	got, err := New("Buy milk", "from the corner shop", deadline, PriorityHigh)
	after := time.Now()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got.ID == "" {
		t.Error("expected a generated ID, got empty string")
	}
	if got.Status != StatusTodo {
		t.Errorf("status = %q, want %q", got.Status, StatusTodo)
	}
	if got.CreatedAt.Before(before) || got.CreatedAt.After(after) {
		t.Errorf("CreatedAt = %v, want between %v and %v", got.CreatedAt, before, after)
	}
	if got.Title != "Buy milk" {
		t.Errorf("title = %q, want %q", got.Title, "Buy milk")
	}
	if !got.Deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", got.Deadline, deadline)
	}
}

func TestNew_Validation(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		title     string
		deadline  time.Time
		priority  Priority
		wantField string
	}{
		{
			name:      "empty title",
			title:     "",
			deadline:  deadline,
			priority:  PriorityHigh,
			wantField: "title",
		},
		{
			name:      "zero deadline",
			title:     "Buy milk",
			deadline:  time.Time{},
			priority:  PriorityHigh,
			wantField: "deadline",
		},
		{
			name:      "empty priority",
			title:     "Buy milk",
			deadline:  deadline,
			priority:  "",
			wantField: "priority",
		},
		{
			name:      "unknown priority",
			title:     "Buy milk",
			deadline:  deadline,
			priority:  "urgent",
			wantField: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.title, "", tt.deadline, tt.priority)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		got, err := New("Task", "", deadline, PriorityLow)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if seen[got.ID] {
			t.Fatalf("duplicate ID generated: %s", got.ID)
		}
		seen[got.ID] = true
	}
}

func TestFromRecord_RoundTrip(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	original, err := New("Buy milk", "2 liters", deadline, PriorityMedium)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	original.Status = StatusCompleted

	// Serialize and parse the record, the way the blob store does.
	data, err := json.Marshal(original.Record())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	restored, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("FromRecord() error = %v", err)
	}

	if restored.ID != original.ID {
		t.Errorf("ID = %q, want %q", restored.ID, original.ID)
	}
	if restored.Status != original.Status {
		t.Errorf("status = %q, want %q", restored.Status, original.Status)
	}
	if !restored.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", restored.CreatedAt, original.CreatedAt)
	}
	if restored.Title != original.Title || restored.Description != original.Description {
		t.Errorf("fields = (%q, %q), want (%q, %q)",
			restored.Title, restored.Description, original.Title, original.Description)
	}
}

func TestFromRecord_Validation(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	valid := Record{
		ID:        "1700000000000-abc12345",
		Title:     "Buy milk",
		Deadline:  deadline,
		Priority:  "high",
		Status:    "todo",
		CreatedAt: createdAt,
	}

	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{"missing id", func(r *Record) { r.ID = "" }},
		{"missing title", func(r *Record) { r.Title = "" }},
		{"missing deadline", func(r *Record) { r.Deadline = time.Time{} }},
		{"missing priority", func(r *Record) { r.Priority = "" }},
		{"unknown status", func(r *Record) { r.Status = "archived" }},
		{"missing created at", func(r *Record) { r.CreatedAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)

			_, err := FromRecord(rec)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"high", PriorityHigh, false},
		{"Medium", PriorityMedium, false},
		{" LOW ", PriorityLow, false},
		{"", "", true},
		{"urgent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

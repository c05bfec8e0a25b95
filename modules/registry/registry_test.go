package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/task-tracker-demo/domain/task"
)

// memStore is an in-memory Store for testing, with switchable
// failures.
type memStore struct {
	records  []task.Record
	saves    int
	failLoad bool
	failSave bool
}

func (s *memStore) Load(_ context.Context) ([]task.Record, error) {
	if s.failLoad {
		return nil, errors.New("load failure")
	}
	return s.records, nil
}

func (s *memStore) Save(_ context.Context, records []task.Record) error {
	if s.failSave {
		return errors.New("save failure")
	}
	s.records = records
	s.saves++
	return nil
}

// recordingObserver captures every snapshot it receives.
type recordingObserver struct {
	snapshots [][]task.Task
}

func (o *recordingObserver) Receive(tasks []task.Task) {
	o.snapshots = append(o.snapshots, tasks)
}

func newTestRegistry(t *testing.T) (*Registry, *memStore, *recordingObserver) {
	t.Helper()

	store := &memStore{}
	reg := NewRegistry(store)
	obs := &recordingObserver{}
	reg.AddObserver(obs)
	return reg, store, obs
}

var testDeadline = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestCreate(t *testing.T) {
	reg, store, obs := newTestRegistry(t)
	ctx := context.Background()

	created, err := reg.Create(ctx, "Buy milk", "", testDeadline, task.PriorityHigh)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if created.Status != task.StatusTodo {
		t.Errorf("status = %q, want %q", created.Status, task.StatusTodo)
	}
	if got := len(reg.Tasks()); got != 1 {
		t.Errorf("registry size = %d, want 1", got)
	}
	if store.saves != 1 {
		t.Errorf("store saves = %d, want 1", store.saves)
	}

	// Exactly one notification carrying the new task.
	if len(obs.snapshots) != 1 {
		t.Fatalf("notifications = %d, want 1", len(obs.snapshots))
	}
	if len(obs.snapshots[0]) != 1 || obs.snapshots[0][0].ID != created.ID {
		t.Errorf("snapshot does not contain the created task")
	}
}

func TestCreate_ValidationLeavesRegistryUnchanged(t *testing.T) {
	reg, store, obs := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		title    string
		deadline time.Time
		priority task.Priority
	}{
		{"empty title", "", testDeadline, task.PriorityHigh},
		{"zero deadline", "Buy milk", time.Time{}, task.PriorityHigh},
		{"empty priority", "Buy milk", testDeadline, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Create(ctx, tt.title, "", tt.deadline, tt.priority)

			var verr *task.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if got := len(reg.Tasks()); got != 0 {
				t.Errorf("registry size = %d, want 0", got)
			}
			if store.saves != 0 {
				t.Errorf("store saves = %d, want 0", store.saves)
			}
			if len(obs.snapshots) != 0 {
				t.Errorf("notifications = %d, want 0", len(obs.snapshots))
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	reg, _, obs := newTestRegistry(t)
	ctx := context.Background()

	created, err := reg.Create(ctx, "Buy milk", "", testDeadline, task.PriorityHigh)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("status only change", func(t *testing.T) {
		status := task.StatusCompleted
		updated, err := reg.Update(ctx, created.ID, Update{Status: &status})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if updated.Status != task.StatusCompleted {
			t.Errorf("status = %q, want %q", updated.Status, task.StatusCompleted)
		}
		if updated.ID != created.ID {
			t.Errorf("ID changed: %q -> %q", created.ID, updated.ID)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("CreatedAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
		}
		if updated.Title != created.Title {
			t.Errorf("title changed: %q -> %q", created.Title, updated.Title)
		}
	})

	t.Run("absent status pointer leaves status alone", func(t *testing.T) {
		title := "Buy oat milk"
		updated, err := reg.Update(ctx, created.ID, Update{Title: &title})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Status != task.StatusCompleted {
			t.Errorf("status reset to %q by unrelated update", updated.Status)
		}
		if updated.Title != "Buy oat milk" {
			t.Errorf("title = %q, want %q", updated.Title, "Buy oat milk")
		}
	})

	t.Run("empty title rejected", func(t *testing.T) {
		empty := ""
		_, err := reg.Update(ctx, created.ID, Update{Title: &empty})

		var verr *task.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
	})

	t.Run("nonexistent id", func(t *testing.T) {
		before := len(obs.snapshots)

		title := "nope"
		_, err := reg.Update(ctx, "missing-id", Update{Title: &title})
		if !errors.Is(err, task.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(obs.snapshots) != before {
			t.Errorf("notification fired for failed update")
		}
	})
}

func TestDelete(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	first, _ := reg.Create(ctx, "First", "", testDeadline, task.PriorityLow)
	second, _ := reg.Create(ctx, "Second", "", testDeadline, task.PriorityLow)

	if err := reg.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	remaining := reg.Tasks()
	if len(remaining) != 1 || remaining[0].ID != second.ID {
		t.Errorf("expected only %q to remain, got %v", second.ID, remaining)
	}

	if err := reg.Delete(ctx, "missing-id"); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestCompleteUncomplete(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	created, _ := reg.Create(ctx, "Buy milk", "", testDeadline, task.PriorityLow)

	completed, err := reg.Complete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completed.Status != task.StatusCompleted {
		t.Errorf("status = %q, want %q", completed.Status, task.StatusCompleted)
	}

	reopened, err := reg.Uncomplete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Uncomplete() error = %v", err)
	}
	if reopened.Status != task.StatusTodo {
		t.Errorf("status = %q, want %q", reopened.Status, task.StatusTodo)
	}
}

func TestTasks_DefensiveCopy(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	created, _ := reg.Create(ctx, "Buy milk", "", testDeadline, task.PriorityLow)

	got := reg.Tasks()
	got[0].Title = "mutated"

	fresh, err := reg.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fresh.Title != "Buy milk" {
		t.Errorf("registry state mutated through snapshot: title = %q", fresh.Title)
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		reg, _, obs := newTestRegistry(t)

		reg.Load(context.Background())

		if got := len(reg.Tasks()); got != 0 {
			t.Errorf("registry size = %d, want 0", got)
		}
		if len(obs.snapshots) != 1 {
			t.Errorf("notifications = %d, want 1", len(obs.snapshots))
		}
	})

	t.Run("store failure falls back to empty", func(t *testing.T) {
		reg, store, obs := newTestRegistry(t)
		ctx := context.Background()

		if _, err := reg.Create(ctx, "Buy milk", "", testDeadline, task.PriorityLow); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		store.failLoad = true

		reg.Load(ctx)

		if got := len(reg.Tasks()); got != 0 {
			t.Errorf("registry size after failed load = %d, want 0", got)
		}
		// One notification for the create, one for the load.
		if len(obs.snapshots) != 2 {
			t.Errorf("notifications = %d, want 2", len(obs.snapshots))
		}
	})

	t.Run("invalid records are skipped", func(t *testing.T) {
		store := &memStore{records: []task.Record{
			{ID: "ok-1", Title: "Valid", Deadline: testDeadline, Priority: "low", Status: "todo", CreatedAt: testDeadline},
			{ID: "bad-1", Title: "", Deadline: testDeadline, Priority: "low", Status: "todo", CreatedAt: testDeadline},
		}}
		reg := NewRegistry(store)

		reg.Load(context.Background())

		got := reg.Tasks()
		if len(got) != 1 || got[0].ID != "ok-1" {
			t.Errorf("expected only the valid record, got %v", got)
		}
	})
}

func TestSave_ReportsFailure(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	if !reg.Save(ctx) {
		t.Error("Save() = false, want true")
	}

	store.failSave = true
	if reg.Save(ctx) {
		t.Error("Save() = true with failing store, want false")
	}
}

func TestStats(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	// 3 todo (1 overdue), 2 completed, 2 high priority.
	if _, err := reg.Create(ctx, "Overdue todo", "", past, task.PriorityHigh); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	reg.Create(ctx, "Future todo", "", future, task.PriorityMedium)
	reg.Create(ctx, "Another todo", "", future, task.PriorityLow)
	doneA, _ := reg.Create(ctx, "Done A", "", future, task.PriorityHigh)
	doneB, _ := reg.Create(ctx, "Done B", "", past, task.PriorityLow)
	reg.Complete(ctx, doneA.ID)
	reg.Complete(ctx, doneB.ID)

	got := reg.Stats()
	want := Statistics{Total: 5, Completed: 2, Pending: 3, HighPriority: 2, Overdue: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

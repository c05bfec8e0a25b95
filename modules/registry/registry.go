package registry

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/example/task-tracker-demo/domain/task"
)

// Store is the persistence adapter the registry delegates to. Load
// returns the raw persisted records; Save overwrites the stored blob
// with the given records entirely.
type Store interface {
	Load(ctx context.Context) ([]task.Record, error)
	Save(ctx context.Context, records []task.Record) error
}

// Update lists the fields a partial update may change. Nil pointers
// leave the field untouched. ID and CreatedAt are deliberately absent:
// they can never be overwritten through an update.
type Update struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Priority    *task.Priority
	Status      *task.Status
}

// Statistics are aggregate counts computed on demand from the current
// collection.
type Statistics struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"high_priority"`
	Overdue      int `json:"overdue"`
}

// Registry is the single authoritative owner of all tasks in the
// process. Every mutation persists the full collection and then
// notifies observers, in that order, on the calling goroutine. The
// internal slice preserves insertion order, which is the baseline
// display order before any sort is applied.
type Registry struct {
	mu        sync.RWMutex
	tasks     []task.Task
	observers []Observer
	store     Store
}

// NewRegistry creates a registry backed by the given store. Exactly
// one registry exists per process; the registry module owns it and
// hands it out, nothing constructs a second one.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Create validates the input, constructs a fresh task and appends it
// to the collection.
func (r *Registry) Create(ctx context.Context, title, description string, deadline time.Time, priority task.Priority) (task.Task, error) {
	created, err := task.New(title, description, deadline, priority)
	if err != nil {
		return task.Task{}, err
	}

	r.mu.Lock()
	r.tasks = append(r.tasks, created)
	snapshot, records := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(ctx, records)
	r.notify(snapshot)
	return created, nil
}

// Get returns the task with the given ID, or ErrNotFound.
func (r *Registry) Get(id string) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

// Tasks returns a defensive copy of the current collection in
// insertion order. Mutating the result never affects registry state.
func (r *Registry) Tasks() []task.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]task.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Update applies the provided fields to the task with the given ID.
// Only the fields carried by upd change; status in particular is only
// ever touched when the caller sets it explicitly.
func (r *Registry) Update(ctx context.Context, id string, upd Update) (task.Task, error) {
	r.mu.Lock()

	idx := -1
	for i, t := range r.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return task.Task{}, task.ErrNotFound
	}

	updated := r.tasks[idx]
	if upd.Title != nil {
		if *upd.Title == "" {
			r.mu.Unlock()
			return task.Task{}, &task.ValidationError{Field: "title", Reason: "is required"}
		}
		updated.Title = *upd.Title
	}
	if upd.Description != nil {
		updated.Description = *upd.Description
	}
	if upd.Deadline != nil {
		if upd.Deadline.IsZero() {
			r.mu.Unlock()
			return task.Task{}, &task.ValidationError{Field: "deadline", Reason: "is required"}
		}
		updated.Deadline = *upd.Deadline
	}
	if upd.Priority != nil {
		priority, err := task.ParsePriority(string(*upd.Priority))
		if err != nil {
			r.mu.Unlock()
			return task.Task{}, err
		}
		updated.Priority = priority
	}
	if upd.Status != nil {
		status, err := task.ParseStatus(string(*upd.Status))
		if err != nil {
			r.mu.Unlock()
			return task.Task{}, err
		}
		updated.Status = status
	}

	r.tasks[idx] = updated
	snapshot, records := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(ctx, records)
	r.notify(snapshot)
	return updated, nil
}

// Delete removes the task with the given ID, or returns ErrNotFound.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()

	idx := -1
	for i, t := range r.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return task.ErrNotFound
	}

	r.tasks = append(r.tasks[:idx], r.tasks[idx+1:]...)
	snapshot, records := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(ctx, records)
	r.notify(snapshot)
	return nil
}

// Complete marks the task as completed.
func (r *Registry) Complete(ctx context.Context, id string) (task.Task, error) {
	status := task.StatusCompleted
	return r.Update(ctx, id, Update{Status: &status})
}

// Uncomplete marks the task as still to do.
func (r *Registry) Uncomplete(ctx context.Context, id string) (task.Task, error) {
	status := task.StatusTodo
	return r.Update(ctx, id, Update{Status: &status})
}

// Load replaces the in-memory collection with whatever the store
// holds. A store failure falls back to an empty collection and is
// never surfaced to the caller; observers are notified either way.
func (r *Registry) Load(ctx context.Context) {
	records, err := r.store.Load(ctx)
	if err != nil {
		log.Printf("[registry] Load failed, starting empty: %v", err)
		records = nil
	}

	tasks := make([]task.Task, 0, len(records))
	for _, rec := range records {
		t, err := task.FromRecord(rec)
		if err != nil {
			log.Printf("[registry] Skipping invalid record %q: %v", rec.ID, err)
			continue
		}
		tasks = append(tasks, t)
	}

	r.mu.Lock()
	r.tasks = tasks
	snapshot, _ := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(snapshot)
}

// Save writes the current collection through the store and reports
// success. Save never returns an error; a storage outage must not
// block task CRUD.
func (r *Registry) Save(ctx context.Context) bool {
	r.mu.RLock()
	_, records := r.snapshotLocked()
	r.mu.RUnlock()

	return r.persist(ctx, records)
}

// Stats computes aggregate counts over the current collection.
// Overdue means not completed with a deadline strictly before now.
func (r *Registry) Stats() Statistics {
	now := time.Now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Statistics{Total: len(r.tasks)}
	for _, t := range r.tasks {
		if t.Status == task.StatusCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if t.Priority == task.PriorityHigh {
			stats.HighPriority++
		}
		if t.Overdue(now) {
			stats.Overdue++
		}
	}
	return stats
}

// snapshotLocked builds the observer snapshot and the persisted record
// set in one pass. Callers must hold at least a read lock.
func (r *Registry) snapshotLocked() ([]task.Task, []task.Record) {
	snapshot := make([]task.Task, len(r.tasks))
	records := make([]task.Record, len(r.tasks))
	for i, t := range r.tasks {
		snapshot[i] = t
		records[i] = t.Record()
	}
	return snapshot, records
}

// persist writes the records through the store, logging instead of
// propagating failure.
func (r *Registry) persist(ctx context.Context, records []task.Record) bool {
	if err := r.store.Save(ctx, records); err != nil {
		log.Printf("[registry] Save failed: %v", err)
		return false
	}
	return true
}

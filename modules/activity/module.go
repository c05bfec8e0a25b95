// Package activity consumes registry snapshots. It plays the role of
// the rendering layer: it registers as an observer and reacts to every
// change by logging and tracking counters.
package activity

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/go-monolith/mono"

	"github.com/example/task-tracker-demo/domain/task"
	"github.com/example/task-tracker-demo/modules/registry"
)

// Module observes the task registry and keeps lightweight counters
// about what it has seen.
type Module struct {
	mu            sync.Mutex
	notifications int
	lastTotal     int
	lastCompleted int

	registryModule *registry.Module
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)
var _ registry.Observer = (*Module)(nil)

// NewModule creates a new activity module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "activity"
}

// SetRegistryModule sets the registry module dependency.
func (m *Module) SetRegistryModule(rm *registry.Module) {
	m.registryModule = rm
}

// Start subscribes to registry notifications.
func (m *Module) Start(_ context.Context) error {
	if m.registryModule == nil {
		return fmt.Errorf("registry module not set")
	}

	reg := m.registryModule.GetRegistry()
	if reg == nil {
		return fmt.Errorf("registry not available")
	}

	reg.AddObserver(m)
	log.Println("[activity] Observing registry changes")
	return nil
}

// Stop unsubscribes from the registry.
func (m *Module) Stop(_ context.Context) error {
	if m.registryModule != nil {
		if reg := m.registryModule.GetRegistry(); reg != nil {
			reg.RemoveObserver(m)
		}
	}
	log.Println("[activity] Module stopped")
	return nil
}

// Receive handles one registry snapshot. The snapshot is a copy, so
// reading it needs no coordination with the registry.
func (m *Module) Receive(tasks []task.Task) {
	completed := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completed++
		}
	}

	m.mu.Lock()
	m.notifications++
	m.lastTotal = len(tasks)
	m.lastCompleted = completed
	n := m.notifications
	m.mu.Unlock()

	log.Printf("[activity] Snapshot #%d: %d tasks, %d completed", n, len(tasks), completed)
}

// Health reports the observer state.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"notifications":  m.notifications,
			"last_total":     m.lastTotal,
			"last_completed": m.lastCompleted,
		},
	}
}

// NotificationCount returns how many snapshots have been received.
func (m *Module) NotificationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifications
}

// LastSnapshot returns the size and completed count of the most
// recent snapshot.
func (m *Module) LastSnapshot() (total, completed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTotal, m.lastCompleted
}

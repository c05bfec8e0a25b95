package registry

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"

	"github.com/example/task-tracker-demo/modules/storage"
)

// Module owns the one Registry instance for the process. It hydrates
// the registry from the blob store on start and flushes it on stop,
// so a shutdown behaves like the final write on page unload.
type Module struct {
	registry      *Registry
	storageModule *storage.Module
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new registry module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "registry"
}

// SetStorageModule sets the storage module dependency.
func (m *Module) SetStorageModule(sm *storage.Module) {
	m.storageModule = sm
}

// Start creates the registry and loads the persisted collection.
func (m *Module) Start(ctx context.Context) error {
	if m.storageModule == nil {
		return fmt.Errorf("storage module not set")
	}

	store := m.storageModule.Store()
	if store == nil {
		return fmt.Errorf("blob store not available")
	}

	m.registry = NewRegistry(store)
	m.registry.Load(ctx)

	log.Printf("[registry] Module started with %d tasks", len(m.registry.Tasks()))
	return nil
}

// Stop performs the final best-effort save.
func (m *Module) Stop(ctx context.Context) error {
	if m.registry == nil {
		return nil
	}

	if !m.registry.Save(ctx) {
		log.Println("[registry] Final save failed")
	} else {
		log.Println("[registry] Final save complete")
	}
	return nil
}

// Health reports whether the registry is serving.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.registry == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "registry not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"tasks": len(m.registry.Tasks()),
		},
	}
}

// GetRegistry returns the registry instance. All consumers go through
// here; nothing else constructs a Registry.
func (m *Module) GetRegistry() *Registry {
	return m.registry
}

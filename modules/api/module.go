package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/task-tracker-demo/modules/registry"
	"github.com/example/task-tracker-demo/modules/storage"
)

// Module provides the HTTP command surface for the task tracker.
type Module struct {
	app            *fiber.App
	handlers       *Handlers
	registryModule *registry.Module
	storageModule  *storage.Module
	port           string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module.
func NewModule() *Module {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return &Module{port: port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetRegistryModule sets the registry module dependency.
func (m *Module) SetRegistryModule(rm *registry.Module) {
	m.registryModule = rm
}

// SetStorageModule sets the storage module dependency.
func (m *Module) SetStorageModule(sm *storage.Module) {
	m.storageModule = sm
}

// Init initializes the Fiber app and global middleware.
func (m *Module) Init(_ mono.ServiceContainer) error {
	m.app = fiber.New(fiber.Config{
		AppName:               "Task Tracker",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	return nil
}

// Start wires the handlers and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.registryModule == nil {
		return fmt.Errorf("registry module not set")
	}
	if m.storageModule == nil {
		return fmt.Errorf("storage module not set")
	}

	reg := m.registryModule.GetRegistry()
	if reg == nil {
		return fmt.Errorf("registry not available")
	}
	exporter := m.storageModule.Exporter()
	if exporter == nil {
		return fmt.Errorf("exporter not available")
	}

	m.handlers = NewHandlers(reg, exporter)
	m.setupRoutes()

	go func() {
		addr := ":" + m.port
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	return nil
}

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes() {
	m.app.Get("/health", m.handlers.HealthCheck)

	api := m.app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Get("/", m.handlers.ListTasks)
	tasks.Post("/", m.handlers.CreateTask)
	tasks.Get("/stats", m.handlers.GetStats)
	tasks.Post("/save", m.handlers.SaveTasks)
	tasks.Post("/reload", m.handlers.ReloadTasks)
	tasks.Post("/export", m.handlers.ExportTasks)
	tasks.Get("/:id", m.handlers.GetTask)
	tasks.Patch("/:id", m.handlers.UpdateTask)
	tasks.Delete("/:id", m.handlers.DeleteTask)
	tasks.Post("/:id/complete", m.handlers.CompleteTask)
	tasks.Post("/:id/uncomplete", m.handlers.UncompleteTask)
}

// Stop stops the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	if m.app != nil {
		log.Println("[api] Shutting down HTTP server...")
		return m.app.Shutdown()
	}
	return nil
}

// Health reports whether the HTTP layer is serving.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil || m.handlers == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "http server not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// errorHandler handles errors from Fiber routes.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":  message,
		"code":   code,
		"path":   c.Path(),
		"method": c.Method(),
	})
}

// GetApp returns the Fiber app (for testing).
func (m *Module) GetApp() *fiber.App {
	return m.app
}

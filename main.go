package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/task-tracker-demo/modules/activity"
	"github.com/example/task-tracker-demo/modules/api"
	"github.com/example/task-tracker-demo/modules/registry"
	"github.com/example/task-tracker-demo/modules/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Wire modules. The registry owns the one task collection; storage
	// provides the blob store it persists through; activity observes
	// every snapshot; api is the driving adapter.
	storageModule := storage.NewModule()

	registryModule := registry.NewModule()
	registryModule.SetStorageModule(storageModule)

	activityModule := activity.NewModule()
	activityModule.SetRegistryModule(registryModule)

	apiModule := api.NewModule()
	apiModule.SetRegistryModule(registryModule)
	apiModule.SetStorageModule(storageModule)

	// Registration order is startup order: dependencies first.
	app.Register(storageModule)
	app.Register(registryModule)
	app.Register(activityModule)
	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown. Stopping the registry module flushes the
	// collection to the blob store, so Ctrl+C behaves like closing the
	// browser tab.
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("  GET    /api/v1/tasks                   - List tasks (?filter=&sort=)")
	log.Println("  POST   /api/v1/tasks                   - Create a task")
	log.Println("  GET    /api/v1/tasks/stats             - Aggregate statistics")
	log.Println("  GET    /api/v1/tasks/:id               - Get a task")
	log.Println("  PATCH  /api/v1/tasks/:id               - Partially update a task")
	log.Println("  DELETE /api/v1/tasks/:id               - Delete a task")
	log.Println("  POST   /api/v1/tasks/:id/complete      - Mark completed")
	log.Println("  POST   /api/v1/tasks/:id/uncomplete    - Mark to do")
	log.Println("  POST   /api/v1/tasks/save              - Explicit save")
	log.Println("  POST   /api/v1/tasks/reload            - Reload from storage")
	log.Println("  POST   /api/v1/tasks/export            - Write text report")
	log.Println("")
	log.Println("Available Services (via NATS request-reply):")
	log.Println("  - registry.create / get / list / update / delete / stats")
	log.Println("")
	log.Println("Filter keys: all, completed, notCompleted, highPriority, overdue")
	log.Println("Sort keys:   deadline, priority, created")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

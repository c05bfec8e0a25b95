package storage

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module owns the SQLite database and provides the blob store and the
// file exporter.
type Module struct {
	db        *gorm.DB
	store     *BlobStore
	exporter  *Exporter
	dbPath    string
	exportDir string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new storage module.
func NewModule() *Module {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "tasks.db"
	}
	exportDir := os.Getenv("EXPORT_DIR")
	if exportDir == "" {
		exportDir = "exports"
	}
	return &Module{
		dbPath:    dbPath,
		exportDir: exportDir,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "storage"
}

// Start opens the database and runs migrations.
func (m *Module) Start(_ context.Context) error {
	log.Printf("[storage] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m.db = db

	if err := m.db.AutoMigrate(&Blob{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.store = NewBlobStore(m.db)
	m.exporter = NewExporter(m.exportDir)

	log.Println("[storage] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	log.Println("[storage] Closing database connection...")

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[storage] Database connection closed")
	return nil
}

// Health performs a health check on the storage module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// Store returns the blob store.
func (m *Module) Store() *BlobStore {
	return m.store
}

// Exporter returns the file exporter.
func (m *Module) Exporter() *Exporter {
	return m.exporter
}

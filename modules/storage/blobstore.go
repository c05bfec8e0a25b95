package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/task-tracker-demo/domain/task"
)

// tasksKey is the one logical key the whole task collection lives
// under. The store is a key-value blob, not a per-task table.
const tasksKey = "tasks"

// Blob is a single key-value row. The value is the JSON-encoded task
// record list.
type Blob struct {
	Key       string    `gorm:"primarykey;size:64"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for Blob model.
func (Blob) TableName() string {
	return "blobs"
}

// BlobStore persists the task collection as one JSON blob in SQLite.
type BlobStore struct {
	db *gorm.DB
}

// NewBlobStore creates a blob store on top of an open database.
func NewBlobStore(db *gorm.DB) *BlobStore {
	return &BlobStore{db: db}
}

// Load reads the stored task records. A missing row or unparsable
// blob yields an empty list, not an error; only a real database
// failure is surfaced.
func (s *BlobStore) Load(ctx context.Context) ([]task.Record, error) {
	var blob Blob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", tasksKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []task.Record{}, nil
		}
		return nil, &task.StorageError{Op: "load", Err: err}
	}

	var records []task.Record
	if err := json.Unmarshal(blob.Value, &records); err != nil {
		log.Printf("[storage] Stored blob is unparsable, treating as empty: %v", err)
		return []task.Record{}, nil
	}
	return records, nil
}

// Save serializes the records and overwrites the stored blob
// entirely.
func (s *BlobStore) Save(ctx context.Context, records []task.Record) error {
	if records == nil {
		records = []task.Record{}
	}

	value, err := json.Marshal(records)
	if err != nil {
		return &task.StorageError{Op: "save", Err: err}
	}

	blob := Blob{Key: tasksKey, Value: value, UpdatedAt: time.Now()}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&blob)
	if result.Error != nil {
		return &task.StorageError{Op: "save", Err: result.Error}
	}
	return nil
}

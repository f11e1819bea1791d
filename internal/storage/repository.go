// ABOUTME: Repository interface for run and mood storage.
// ABOUTME: Implemented by the SQLite, badger, and Postgres backends.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/moodrun/internal/models"
)

// ErrNotFound is returned when a requested record does not exist,
// including Latest* calls on an empty collection.
var ErrNotFound = errors.New("storage: not found")

// Repository defines the storage interface for runs and moods.
// Create* assigns the record's ID. List* returns records in insertion order.
type Repository interface {
	// Run operations
	CreateRun(ctx context.Context, r *models.Run) error
	GetRun(ctx context.Context, id int64) (*models.Run, error)
	ListRuns(ctx context.Context) ([]*models.Run, error)
	DeleteRun(ctx context.Context, id int64) error
	LatestRun(ctx context.Context) (*models.Run, error)

	// Mood operations
	CreateMood(ctx context.Context, m *models.Mood) error
	GetMood(ctx context.Context, id int64) (*models.Mood, error)
	ListMoods(ctx context.Context) ([]*models.Mood, error)
	DeleteMood(ctx context.Context, id int64) error
	LatestMood(ctx context.Context) (*models.Mood, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

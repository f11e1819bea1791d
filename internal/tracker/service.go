// ABOUTME: Tracker service: validation, pace derivation, and recents lookup.
// ABOUTME: Shared by the HTTP, CLI, and MCP surfaces so every caller gets the same rules.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/moodrun/internal/models"
	"github.com/harperreed/moodrun/internal/storage"
)

// Entity names used in not-found messages.
const (
	EntityRun  = "Run"
	EntityMood = "Mood"
)

// NotFoundError reports a run or mood that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return storage.ErrNotFound
}

// Service implements run and mood operations on top of a Repository.
type Service struct {
	repo storage.Repository
	now  func() time.Time
}

// NewService creates a Service backed by repo.
func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo, now: models.Now}
}

// Ping checks the backing store.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Recents holds the most recently dated run and mood. Either may be nil.
type Recents struct {
	LatestRun  *models.Run
	LatestMood *models.Mood
}

// Recents looks up the latest run and latest mood independently.
func (s *Service) Recents(ctx context.Context) (*Recents, error) {
	var out Recents

	run, err := s.repo.LatestRun(ctx)
	switch {
	case err == nil:
		out.LatestRun = run
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("recents: %w", err)
	}

	mood, err := s.repo.LatestMood(ctx)
	switch {
	case err == nil:
		out.LatestMood = mood
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("recents: %w", err)
	}

	return &out, nil
}

// notFound converts storage.ErrNotFound into a NotFoundError for entity.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}

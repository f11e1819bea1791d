// ABOUTME: Run creation, lookup, and deletion.
// ABOUTME: Validates in order: required fields, date, total time, distance.
package tracker

import (
	"context"

	"github.com/harperreed/moodrun/internal/models"
)

// RunInput is the payload for creating a run. Nil means the field was absent.
type RunInput struct {
	Name      *string  `json:"name" binding:"required"`
	Date      *string  `json:"date" binding:"required"`
	Distance  *float64 `json:"distance" binding:"required"`
	TotalTime *string  `json:"total_time" binding:"required"`
}

// BuildRun validates in and derives the run's pace. Nothing is stored.
func BuildRun(in RunInput) (*models.Run, error) {
	switch {
	case in.Name == nil:
		return nil, models.MissingField("name")
	case in.Date == nil:
		return nil, models.MissingField("date")
	case in.Distance == nil:
		return nil, models.MissingField("distance")
	case in.TotalTime == nil:
		return nil, models.MissingField("total_time")
	}

	date, err := models.ParseRunDate(*in.Date)
	if err != nil {
		return nil, err
	}
	total, err := models.ParseDuration(*in.TotalTime)
	if err != nil {
		return nil, err
	}
	return models.NewRun(*in.Name, date, *in.Distance, total)
}

// CreateRun validates and stores a new run.
func (s *Service) CreateRun(ctx context.Context, in RunInput) (*models.Run, error) {
	r, err := BuildRun(in)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = s.now()

	if err := s.repo.CreateRun(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRuns returns every run in insertion order.
func (s *Service) ListRuns(ctx context.Context) ([]*models.Run, error) {
	return s.repo.ListRuns(ctx)
}

// GetRun returns a single run.
func (s *Service) GetRun(ctx context.Context, id int64) (*models.Run, error) {
	r, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityRun, id)
	}
	return r, nil
}

// DeleteRun removes a run.
func (s *Service) DeleteRun(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRun(ctx, id); err != nil {
		return notFound(err, EntityRun, id)
	}
	return nil
}

// StringPtr and FloatPtr help callers outside JSON decoding build inputs.
func StringPtr(s string) *string { return &s }

func FloatPtr(f float64) *float64 { return &f }

// RunInputFrom builds a fully populated RunInput.
func RunInputFrom(name, date string, distance float64, totalTime string) RunInput {
	return RunInput{
		Name:      StringPtr(name),
		Date:      StringPtr(date),
		Distance:  FloatPtr(distance),
		TotalTime: StringPtr(totalTime),
	}
}

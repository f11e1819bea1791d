// ABOUTME: Mood creation, lookup, and deletion.
// ABOUTME: Levels arrive as JSON numbers and must be whole values in range.
package tracker

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/harperreed/moodrun/internal/models"
)

// MoodInput is the payload for creating a mood. Date is optional.
type MoodInput struct {
	PositivityLevel *float64 `json:"positivity_level" binding:"required"`
	StressLevel     *float64 `json:"stress_level" binding:"required"`
	EnergyLevel     *float64 `json:"energy_level" binding:"required"`
	CalmnessLevel   *float64 `json:"calmness_level" binding:"required"`
	MotivationLevel *float64 `json:"motivation_level" binding:"required"`
	Date            *string  `json:"date"`
}

// MoodInputFrom builds a MoodInput from integer levels. An empty date is omitted.
func MoodInputFrom(positivity, stress, energy, calmness, motivation int, date string) MoodInput {
	in := MoodInput{
		PositivityLevel: FloatPtr(float64(positivity)),
		StressLevel:     FloatPtr(float64(stress)),
		EnergyLevel:     FloatPtr(float64(energy)),
		CalmnessLevel:   FloatPtr(float64(calmness)),
		MotivationLevel: FloatPtr(float64(motivation)),
	}
	if date != "" {
		in.Date = StringPtr(date)
	}
	return in
}

// BuildMood validates in. now supplies the date when none is given.
func BuildMood(in MoodInput, now time.Time) (*models.Mood, error) {
	raw := []struct {
		field string
		value *float64
	}{
		{models.FieldPositivity, in.PositivityLevel},
		{models.FieldStress, in.StressLevel},
		{models.FieldEnergy, in.EnergyLevel},
		{models.FieldCalmness, in.CalmnessLevel},
		{models.FieldMotivation, in.MotivationLevel},
	}

	var levels [5]int
	for i, r := range raw {
		if r.value == nil {
			return nil, models.MissingField(r.field)
		}
		v := *r.value
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return nil, models.InvalidField(r.field, "must be an integer")
		}
		// Clamp before converting so huge values still fail the range check.
		levels[i] = int(math.Max(math.Min(v, math.MaxInt32), math.MinInt32))
	}

	m := models.NewMood(levels[0], levels[1], levels[2], levels[3], levels[4])
	if err := m.Validate(); err != nil {
		return nil, err
	}

	m.Date, m.CreatedAt = now, now
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		date, err := models.ParseMoodDate(*in.Date)
		if err != nil {
			return nil, err
		}
		m.WithDate(date)
	}
	return m, nil
}

// CreateMood validates and stores a new mood.
func (s *Service) CreateMood(ctx context.Context, in MoodInput) (*models.Mood, error) {
	m, err := BuildMood(in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateMood(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMoods returns every mood in insertion order.
func (s *Service) ListMoods(ctx context.Context) ([]*models.Mood, error) {
	return s.repo.ListMoods(ctx)
}

// GetMood returns a single mood.
func (s *Service) GetMood(ctx context.Context, id int64) (*models.Mood, error) {
	m, err := s.repo.GetMood(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityMood, id)
	}
	return m, nil
}

// DeleteMood removes a mood.
func (s *Service) DeleteMood(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMood(ctx, id); err != nil {
		return notFound(err, EntityMood, id)
	}
	return nil
}

// ABOUTME: Mood model for self-reported wellbeing snapshots.
// ABOUTME: Five integer levels, each bounded to MinLevel..MaxLevel.
package models

import (
	"fmt"
	"time"
)

// Level bounds, matching the dashboard's 1-10 sliders.
const (
	MinLevel = 1
	MaxLevel = 10
)

// Level field names, in validation order.
const (
	FieldPositivity = "positivity_level"
	FieldStress     = "stress_level"
	FieldEnergy     = "energy_level"
	FieldCalmness   = "calmness_level"
	FieldMotivation = "motivation_level"
)

// Mood represents a single wellbeing snapshot.
type Mood struct {
	ID              int64
	Date            time.Time
	PositivityLevel int
	StressLevel     int
	EnergyLevel     int
	CalmnessLevel   int
	MotivationLevel int
	CreatedAt       time.Time
}

// NewMood creates a Mood dated now.
func NewMood(positivity, stress, energy, calmness, motivation int) *Mood {
	now := Now()
	return &Mood{
		Date:            now,
		PositivityLevel: positivity,
		StressLevel:     stress,
		EnergyLevel:     energy,
		CalmnessLevel:   calmness,
		MotivationLevel: motivation,
		CreatedAt:       now,
	}
}

// WithDate sets a custom date.
func (m *Mood) WithDate(t time.Time) *Mood {
	m.Date = t
	return m
}

// Validate checks every level is within bounds.
func (m *Mood) Validate() error {
	levels := []struct {
		field string
		value int
	}{
		{FieldPositivity, m.PositivityLevel},
		{FieldStress, m.StressLevel},
		{FieldEnergy, m.EnergyLevel},
		{FieldCalmness, m.CalmnessLevel},
		{FieldMotivation, m.MotivationLevel},
	}
	for _, l := range levels {
		if l.value < MinLevel || l.value > MaxLevel {
			return &ValidationError{
				Kind:    ErrInvalidLevel,
				Field:   l.field,
				Message: fmt.Sprintf("%s must be between %d and %d", l.field, MinLevel, MaxLevel),
			}
		}
	}
	return nil
}

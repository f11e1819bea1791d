// ABOUTME: Run model for logged exercise sessions.
// ABOUTME: Pace is derived from total time and distance when the run is built.
package models

import (
	"math"
	"time"
)

// Run represents a single logged run.
type Run struct {
	ID        int64
	Name      string
	Date      time.Time
	Distance  float64
	TotalTime string // canonical HH:MM:SS
	Pace      string // HH:MM:SS per distance unit
	CreatedAt time.Time
}

// NewRun builds a Run and derives its pace. Distance must be positive.
func NewRun(name string, date time.Time, distance float64, totalTime time.Duration) (*Run, error) {
	pace, err := Pace(totalTime, distance)
	if err != nil {
		return nil, err
	}
	return &Run{
		Name:      name,
		Date:      date,
		Distance:  distance,
		TotalTime: FormatDuration(totalTime),
		Pace:      pace,
		CreatedAt: Now(),
	}, nil
}

// Pace returns totalTime / distance formatted as HH:MM:SS.
func Pace(totalTime time.Duration, distance float64) (string, error) {
	if !(distance > 0) || math.IsInf(distance, 0) {
		return "", &ValidationError{Kind: ErrInvalidDistance, Field: "distance", Message: MsgInvalidDistance}
	}
	perUnit := time.Duration(math.Round(float64(totalTime) / distance))
	return FormatDuration(perUnit), nil
}

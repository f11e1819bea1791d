// ABOUTME: Tests for the Run model.
// ABOUTME: Validates pace derivation and distance checks.
package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	date := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	r, err := NewRun("Morning Run", date, 5.0, 45*time.Minute)
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	if r.Name != "Morning Run" {
		t.Errorf("Name = %s, want Morning Run", r.Name)
	}
	if !r.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", r.Date, date)
	}
	if r.TotalTime != "00:45:00" {
		t.Errorf("TotalTime = %s, want 00:45:00", r.TotalTime)
	}
	if r.Pace != "00:09:00" {
		t.Errorf("Pace = %s, want 00:09:00", r.Pace)
	}
	if r.ID != 0 {
		t.Errorf("ID = %d, want 0 until stored", r.ID)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestPace(t *testing.T) {
	tests := []struct {
		name      string
		totalTime time.Duration
		distance  float64
		want      string
	}{
		{"even split", 45 * time.Minute, 5.0, "00:09:00"},
		{"fractional distance", 32 * time.Minute, 4.0, "00:08:00"},
		{"rounds to nearest second", 50 * time.Minute, 6.0, "00:08:20"},
		{"rounds up", 10 * time.Minute, 7.0, "00:01:26"},
		{"short distance", 10 * time.Minute, 0.5, "00:20:00"},
		{"long run", 3*time.Hour + 30*time.Minute, 26.2, "00:08:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pace(tt.totalTime, tt.distance)
			if err != nil {
				t.Fatalf("Pace failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Pace(%v, %v) = %s, want %s", tt.totalTime, tt.distance, got, tt.want)
			}
		})
	}
}

func TestPaceRejectsNonPositiveDistance(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Pace(time.Hour, d)
		if !errors.Is(err, ErrInvalidDistance) {
			t.Errorf("Pace(distance=%v) error = %v, want ErrInvalidDistance", d, err)
		}
	}

	_, err := NewRun("zero", time.Now(), 0, time.Hour)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Message != MsgInvalidDistance {
		t.Errorf("Message = %q, want %q", verr.Message, MsgInvalidDistance)
	}
}

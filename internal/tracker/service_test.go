// ABOUTME: Tests for the tracker service against a real SQLite store.
// ABOUTME: Covers validation order, pace derivation, and recents selection.
package tracker

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/moodrun/internal/models"
	"github.com/harperreed/moodrun/internal/storage"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 15, 0, time.UTC)

func TestCreateRun(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	r, err := svc.CreateRun(ctx, RunInputFrom("Park", "2024-04-30T06:45", 5, "00:45:00"))
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if r.ID != 1 {
		t.Errorf("ID = %d, want 1", r.ID)
	}
	if r.Pace != "00:09:00" {
		t.Errorf("Pace = %q, want 00:09:00", r.Pace)
	}
	if models.FormatDate(r.Date) != "2024-04-30T06:45:00" {
		t.Errorf("Date = %s", models.FormatDate(r.Date))
	}
	if !r.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", r.CreatedAt, fixedNow)
	}
}

func TestCreateRunValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      RunInput
		kind    error
		message string
	}{
		{
			name:    "missing name",
			in:      RunInput{Date: StringPtr("2024-04-30T06:45"), Distance: FloatPtr(5), TotalTime: StringPtr("00:45:00")},
			kind:    models.ErrMissingField,
			message: "Missing required field: name",
		},
		{
			name:    "missing distance reported before bad date",
			in:      RunInput{Name: StringPtr("x"), Date: StringPtr("yesterday"), TotalTime: StringPtr("00:45:00")},
			kind:    models.ErrMissingField,
			message: "Missing required field: distance",
		},
		{
			name:    "bad date reported before bad time",
			in:      RunInputFrom("x", "2024-04-30 06:45", 5, "45:00"),
			kind:    models.ErrInvalidDateTimeFormat,
			message: models.MsgInvalidDateTimeFormat,
		},
		{
			name:    "date with seconds",
			in:      RunInputFrom("x", "2024-04-30T06:45:00", 5, "00:45:00"),
			kind:    models.ErrInvalidDateTimeFormat,
			message: models.MsgInvalidDateTimeFormat,
		},
		{
			name:    "bad time reported before bad distance",
			in:      RunInputFrom("x", "2024-04-30T06:45", 0, "0:45:00"),
			kind:    models.ErrInvalidTimeFormat,
			message: models.MsgInvalidTimeFormat,
		},
		{
			name:    "zero distance",
			in:      RunInputFrom("x", "2024-04-30T06:45", 0, "00:45:00"),
			kind:    models.ErrInvalidDistance,
			message: models.MsgInvalidDistance,
		},
		{
			name:    "negative distance",
			in:      RunInputFrom("x", "2024-04-30T06:45", -3, "00:45:00"),
			kind:    models.ErrInvalidDistance,
			message: models.MsgInvalidDistance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupTestService(t)
			_, err := svc.CreateRun(context.Background(), tt.in)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}

			runs, _ := svc.ListRuns(context.Background())
			if len(runs) != 0 {
				t.Errorf("rejected run was stored: %d runs", len(runs))
			}
		})
	}
}

func TestRunNotFound(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	err := svc.DeleteRun(ctx, 7)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Error() != "Run not found" {
		t.Errorf("message = %q, want %q", nf.Error(), "Run not found")
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Error("NotFoundError should unwrap to storage.ErrNotFound")
	}

	if _, err := svc.GetRun(ctx, 7); !errors.As(err, &nf) {
		t.Errorf("GetRun: expected NotFoundError, got %v", err)
	}
}

func TestCreateMood(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	m, err := svc.CreateMood(ctx, MoodInputFrom(7, 3, 6, 8, 5, ""))
	if err != nil {
		t.Fatalf("CreateMood failed: %v", err)
	}
	if !m.Date.Equal(fixedNow) {
		t.Errorf("default Date = %v, want %v", m.Date, fixedNow)
	}

	dated, err := svc.CreateMood(ctx, MoodInputFrom(1, 10, 1, 10, 1, "2024-04-01T08:00"))
	if err != nil {
		t.Fatalf("CreateMood with date failed: %v", err)
	}
	if models.FormatDate(dated.Date) != "2024-04-01T08:00:00" {
		t.Errorf("Date = %s", models.FormatDate(dated.Date))
	}
	if dated.ID != m.ID+1 {
		t.Errorf("ID = %d, want %d", dated.ID, m.ID+1)
	}
}

func TestCreateMoodValidation(t *testing.T) {
	frac := MoodInputFrom(5, 5, 5, 5, 5, "")
	frac.EnergyLevel = FloatPtr(6.5)

	missing := MoodInputFrom(5, 5, 5, 5, 5, "")
	missing.StressLevel = nil

	nan := MoodInputFrom(5, 5, 5, 5, 5, "")
	nan.CalmnessLevel = FloatPtr(math.NaN())

	tests := []struct {
		name    string
		in      MoodInput
		kind    error
		message string
	}{
		{"missing level", missing, models.ErrMissingField, "Missing required field: stress_level"},
		{"fractional level", frac, models.ErrInvalidField, "energy_level must be an integer"},
		{"nan level", nan, models.ErrInvalidField, "calmness_level must be an integer"},
		{"zero level", MoodInputFrom(0, 5, 5, 5, 5, ""), models.ErrInvalidLevel, "positivity_level must be between 1 and 10"},
		{"eleven", MoodInputFrom(5, 5, 5, 5, 11, ""), models.ErrInvalidLevel, "motivation_level must be between 1 and 10"},
		{"bad date", MoodInputFrom(5, 5, 5, 5, 5, "04/01/2024"), models.ErrInvalidDateTimeFormat, models.MsgInvalidDateTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupTestService(t)
			_, err := svc.CreateMood(context.Background(), tt.in)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestHugeLevelFailsRange(t *testing.T) {
	in := MoodInputFrom(5, 5, 5, 5, 5, "")
	in.PositivityLevel = FloatPtr(1e20)

	_, err := BuildMood(in, fixedNow)
	if !errors.Is(err, models.ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestDeleteMood(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	m, err := svc.CreateMood(ctx, MoodInputFrom(5, 5, 5, 5, 5, ""))
	if err != nil {
		t.Fatalf("CreateMood failed: %v", err)
	}
	if err := svc.DeleteMood(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMood failed: %v", err)
	}

	err = svc.DeleteMood(ctx, m.ID)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "Mood not found" {
		t.Errorf("expected Mood not found, got %v", err)
	}
}

func TestRecents(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	rec, err := svc.Recents(ctx)
	if err != nil {
		t.Fatalf("Recents on empty store failed: %v", err)
	}
	if rec.LatestRun != nil || rec.LatestMood != nil {
		t.Errorf("expected both nil, got %+v", rec)
	}

	for _, in := range []RunInput{
		RunInputFrom("newest", "2024-04-30T06:00", 5, "00:40:00"),
		RunInputFrom("older", "2024-04-01T06:00", 5, "00:40:00"),
	} {
		if _, err := svc.CreateRun(ctx, in); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}
	}

	rec, err = svc.Recents(ctx)
	if err != nil {
		t.Fatalf("Recents failed: %v", err)
	}
	if rec.LatestRun == nil || rec.LatestRun.Name != "newest" {
		t.Errorf("LatestRun = %+v, want newest", rec.LatestRun)
	}
	if rec.LatestMood != nil {
		t.Errorf("LatestMood = %+v, want nil", rec.LatestMood)
	}

	if _, err := svc.CreateMood(ctx, MoodInputFrom(4, 4, 4, 4, 4, "2023-01-01T00:00")); err != nil {
		t.Fatalf("CreateMood failed: %v", err)
	}
	rec, err = svc.Recents(ctx)
	if err != nil {
		t.Fatalf("Recents failed: %v", err)
	}
	if rec.LatestMood == nil || rec.LatestMood.PositivityLevel != 4 {
		t.Errorf("LatestMood = %+v", rec.LatestMood)
	}
}

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "moodrun.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(db)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

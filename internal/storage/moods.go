// ABOUTME: Mood CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for moods.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/moodrun/internal/models"
)

const moodColumns = `id, date, positivity_level, stress_level, energy_level,
	calmness_level, motivation_level, created_at`

// CreateMood stores a new mood and sets its ID.
func (d *DB) CreateMood(ctx context.Context, m *models.Mood) error {
	query := `
		INSERT INTO moods (date, positivity_level, stress_level, energy_level,
			calmness_level, motivation_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.ExecContext(ctx, query,
		m.Date.Format(models.SecondLayout),
		m.PositivityLevel,
		m.StressLevel,
		m.EnergyLevel,
		m.CalmnessLevel,
		m.MotivationLevel,
		m.CreatedAt.Format(models.SecondLayout),
	)
	if err != nil {
		return fmt.Errorf("create mood: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create mood: %w", err)
	}
	m.ID = id
	return nil
}

// GetMood retrieves a mood by ID.
func (d *DB) GetMood(ctx context.Context, id int64) (*models.Mood, error) {
	query := `SELECT ` + moodColumns + ` FROM moods WHERE id = ?`
	m, err := scanMood(d.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get mood %d: %w", id, err)
	}
	return m, nil
}

// ListMoods retrieves all moods in insertion order.
func (d *DB) ListMoods(ctx context.Context) ([]*models.Mood, error) {
	query := `SELECT ` + moodColumns + ` FROM moods ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	defer rows.Close()

	moods := []*models.Mood{}
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, fmt.Errorf("list moods: %w", err)
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// DeleteMood removes a mood by ID.
func (d *DB) DeleteMood(ctx context.Context, id int64) error {
	result, err := d.db.ExecContext(ctx, "DELETE FROM moods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete mood: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete mood: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete mood %d: %w", id, ErrNotFound)
	}
	return nil
}

// LatestMood returns the mood with the greatest date.
func (d *DB) LatestMood(ctx context.Context) (*models.Mood, error) {
	query := `SELECT ` + moodColumns + ` FROM moods ORDER BY date DESC, id DESC LIMIT 1`
	m, err := scanMood(d.db.QueryRowContext(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("latest mood: %w", err)
	}
	return m, nil
}

func scanMood(row rowScanner) (*models.Mood, error) {
	var m models.Mood
	var date, createdAt string

	err := row.Scan(&m.ID, &date, &m.PositivityLevel, &m.StressLevel, &m.EnergyLevel,
		&m.CalmnessLevel, &m.MotivationLevel, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan mood: %w", err)
	}

	m.Date, _ = time.Parse(models.SecondLayout, date)
	m.CreatedAt, _ = time.Parse(models.SecondLayout, createdAt)
	return &m, nil
}

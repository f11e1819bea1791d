// ABOUTME: Run CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/moodrun/internal/models"
)

const runColumns = `id, name, date, distance, total_time, pace, created_at`

// CreateRun stores a new run and sets its ID.
func (d *DB) CreateRun(ctx context.Context, r *models.Run) error {
	query := `
		INSERT INTO runs (name, date, distance, total_time, pace, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.ExecContext(ctx, query,
		r.Name,
		r.Date.Format(models.SecondLayout),
		r.Distance,
		r.TotalTime,
		r.Pace,
		r.CreatedAt.Format(models.SecondLayout),
	)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	r.ID = id
	return nil
}

// GetRun retrieves a run by ID.
func (d *DB) GetRun(ctx context.Context, id int64) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	r, err := scanRun(d.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, err)
	}
	return r, nil
}

// ListRuns retrieves all runs in insertion order.
func (d *DB) ListRuns(ctx context.Context) ([]*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run by ID.
func (d *DB) DeleteRun(ctx context.Context, id int64) error {
	result, err := d.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete run %d: %w", id, ErrNotFound)
	}
	return nil
}

// LatestRun returns the run with the greatest date.
func (d *DB) LatestRun(ctx context.Context) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY date DESC, id DESC LIMIT 1`
	r, err := scanRun(d.db.QueryRowContext(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return r, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var r models.Run
	var date, createdAt string

	err := row.Scan(&r.ID, &r.Name, &date, &r.Distance, &r.TotalTime, &r.Pace, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	r.Date, _ = time.Parse(models.SecondLayout, date)
	r.CreatedAt, _ = time.Parse(models.SecondLayout, createdAt)
	return &r, nil
}

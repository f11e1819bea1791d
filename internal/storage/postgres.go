// ABOUTME: PostgreSQL backend for run and mood storage, built on gorm.
// ABOUTME: Row structs are kept separate from domain models and migrated on open.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/harperreed/moodrun/internal/models"
)

type runRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:text;not null"`
	Date      time.Time `gorm:"type:timestamp;not null;index:idx_runs_date,sort:desc"`
	Distance  float64   `gorm:"not null"`
	TotalTime string    `gorm:"type:text;not null"`
	Pace      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:timestamp;not null"`
}

func (runRow) TableName() string { return "runs" }

type moodRow struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Date            time.Time `gorm:"type:timestamp;not null;index:idx_moods_date,sort:desc"`
	PositivityLevel int       `gorm:"not null"`
	StressLevel     int       `gorm:"not null"`
	EnergyLevel     int       `gorm:"not null"`
	CalmnessLevel   int       `gorm:"not null"`
	MotivationLevel int       `gorm:"not null"`
	CreatedAt       time.Time `gorm:"type:timestamp;not null"`
}

func (moodRow) TableName() string { return "moods" }

// PostgresStore stores runs and moods in PostgreSQL.
type PostgresStore struct {
	db *gorm.DB
}

// Compile-time check that PostgresStore implements Repository.
var _ Repository = (*PostgresStore)(nil)

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	cfg := &gorm.Config{Logger: gormlogger.Discard}
	if logger != nil {
		cfg.Logger = gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&runRow{}, &moodRow{}); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Ping verifies the connection is usable.
func (p *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateRun stores a new run and sets its ID.
func (p *PostgresStore) CreateRun(ctx context.Context, r *models.Run) error {
	row := runRow{
		Name:      r.Name,
		Date:      r.Date,
		Distance:  r.Distance,
		TotalTime: r.TotalTime,
		Pace:      r.Pace,
		CreatedAt: r.CreatedAt,
	}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	r.ID = row.ID
	return nil
}

// GetRun retrieves a run by ID.
func (p *PostgresStore) GetRun(ctx context.Context, id int64) (*models.Run, error) {
	var row runRow
	if err := p.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, mapGormErr(err))
	}
	return row.toModel(), nil
}

// ListRuns retrieves all runs in insertion order.
func (p *PostgresStore) ListRuns(ctx context.Context) ([]*models.Run, error) {
	var rows []runRow
	if err := p.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	runs := make([]*models.Run, 0, len(rows))
	for i := range rows {
		runs = append(runs, rows[i].toModel())
	}
	return runs, nil
}

// DeleteRun removes a run by ID.
func (p *PostgresStore) DeleteRun(ctx context.Context, id int64) error {
	result := p.db.WithContext(ctx).Delete(&runRow{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete run %d: %w", id, ErrNotFound)
	}
	return nil
}

// LatestRun returns the run with the greatest date.
func (p *PostgresStore) LatestRun(ctx context.Context) (*models.Run, error) {
	var row runRow
	if err := p.db.WithContext(ctx).Order("date desc, id desc").Take(&row).Error; err != nil {
		return nil, fmt.Errorf("latest run: %w", mapGormErr(err))
	}
	return row.toModel(), nil
}

// CreateMood stores a new mood and sets its ID.
func (p *PostgresStore) CreateMood(ctx context.Context, m *models.Mood) error {
	row := moodRow{
		Date:            m.Date,
		PositivityLevel: m.PositivityLevel,
		StressLevel:     m.StressLevel,
		EnergyLevel:     m.EnergyLevel,
		CalmnessLevel:   m.CalmnessLevel,
		MotivationLevel: m.MotivationLevel,
		CreatedAt:       m.CreatedAt,
	}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create mood: %w", err)
	}
	m.ID = row.ID
	return nil
}

// GetMood retrieves a mood by ID.
func (p *PostgresStore) GetMood(ctx context.Context, id int64) (*models.Mood, error) {
	var row moodRow
	if err := p.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("get mood %d: %w", id, mapGormErr(err))
	}
	return row.toModel(), nil
}

// ListMoods retrieves all moods in insertion order.
func (p *PostgresStore) ListMoods(ctx context.Context) ([]*models.Mood, error) {
	var rows []moodRow
	if err := p.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	moods := make([]*models.Mood, 0, len(rows))
	for i := range rows {
		moods = append(moods, rows[i].toModel())
	}
	return moods, nil
}

// DeleteMood removes a mood by ID.
func (p *PostgresStore) DeleteMood(ctx context.Context, id int64) error {
	result := p.db.WithContext(ctx).Delete(&moodRow{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete mood: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete mood %d: %w", id, ErrNotFound)
	}
	return nil
}

// LatestMood returns the mood with the greatest date.
func (p *PostgresStore) LatestMood(ctx context.Context) (*models.Mood, error) {
	var row moodRow
	if err := p.db.WithContext(ctx).Order("date desc, id desc").Take(&row).Error; err != nil {
		return nil, fmt.Errorf("latest mood: %w", mapGormErr(err))
	}
	return row.toModel(), nil
}

func (r *runRow) toModel() *models.Run {
	return &models.Run{
		ID:        r.ID,
		Name:      r.Name,
		Date:      models.WallClock(r.Date),
		Distance:  r.Distance,
		TotalTime: r.TotalTime,
		Pace:      r.Pace,
		CreatedAt: models.WallClock(r.CreatedAt),
	}
}

func (m *moodRow) toModel() *models.Mood {
	return &models.Mood{
		ID:              m.ID,
		Date:            models.WallClock(m.Date),
		PositivityLevel: m.PositivityLevel,
		StressLevel:     m.StressLevel,
		EnergyLevel:     m.EnergyLevel,
		CalmnessLevel:   m.CalmnessLevel,
		MotivationLevel: m.MotivationLevel,
		CreatedAt:       models.WallClock(m.CreatedAt),
	}
}

func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the independent runs and moods tables.
package storage

// initSchema creates or updates the database schema.
// Dates are stored as zero-padded ISO text so they sort lexically.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		distance REAL NOT NULL,
		total_time TEXT NOT NULL,
		pace TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS moods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		positivity_level INTEGER NOT NULL,
		stress_level INTEGER NOT NULL,
		energy_level INTEGER NOT NULL,
		calmness_level INTEGER NOT NULL,
		motivation_level INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(date DESC);
	CREATE INDEX IF NOT EXISTS idx_moods_date ON moods(date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}

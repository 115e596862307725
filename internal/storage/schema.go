// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines users, training_records, and body_stats with their constraints.
package storage

const schemaVersion = 1

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS training_records (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		exercises TEXT NOT NULL,
		group_counts TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		UNIQUE (user_id, timestamp)
	);

	CREATE TABLE IF NOT EXISTS body_stats (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		height REAL NOT NULL,
		weight REAL NOT NULL,
		body_fat REAL,
		basal_metabolic_rate REAL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		UNIQUE (user_id, timestamp)
	);

	CREATE INDEX IF NOT EXISTS idx_training_user_created ON training_records(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_body_user_timestamp ON body_stats(user_id, timestamp DESC);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return err
	}

	var version int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version < schemaVersion {
		// PRAGMA does not take bound parameters.
		if _, err := d.db.Exec("PRAGMA user_version = 1"); err != nil {
			return err
		}
	}
	return nil
}

package db

import (
	"context"
	"fmt"
)

// migrations are applied in order; migrations[i] upgrades the schema to
// version i+1.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS apps (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		app_id       TEXT UNIQUE NOT NULL,
		display_name TEXT
	);

	CREATE TABLE IF NOT EXISTS usage_daily (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		app_ref_id      INTEGER NOT NULL REFERENCES apps(id),
		date            TEXT NOT NULL,
		seconds_focused INTEGER DEFAULT 0,
		UNIQUE(app_ref_id, date)
	);
	`,
	`
	ALTER TABLE apps ADD COLUMN last_title TEXT;
	CREATE INDEX IF NOT EXISTS idx_usage_daily_date ON usage_daily(date);
	`,
}

// SchemaVersion is the version a freshly migrated database reports.
var SchemaVersion = len(migrations)

// migrate brings the schema up to SchemaVersion.
func (s *SQLite) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for v := version; v < len(migrations); v++ {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", v+1, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", v+1, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clearing schema version: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, v+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording schema version %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", v+1, err)
		}
	}

	return nil
}

// schemaVersion returns the recorded version, or 0 for a new database.
func (s *SQLite) schemaVersion(ctx context.Context) (int, error) {
	var versions []int
	if err := s.db.SelectContext(ctx, &versions, `SELECT version FROM schema_version`); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if len(versions) == 0 {
		return 0, nil
	}
	return versions[0], nil
}

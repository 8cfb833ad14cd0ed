// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/revanthlol/focusd/internal/dateutil"
	"github.com/revanthlol/focusd/internal/usage"
)

// Storage errors.
var (
	ErrEmptyAppID      = errors.New("app id must not be empty")
	ErrNegativeSeconds = errors.New("seconds must not be negative")
)

var _ usage.Repository = (*SQLite)(nil)

// SQLite implements usage.Repository using SQLite.
type SQLite struct {
	db *sqlx.DB
}

// New opens (creating if needed) the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Pragmas are per connection; one connection keeps them in effect.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA synchronous = NORMAL`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting %s: %w", pragma, err)
		}
	}

	s := &SQLite{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LogUsage adds seconds of focus for appID on the local day of at, creating
// the app row if needed and remembering the latest window title.
func (s *SQLite) LogUsage(ctx context.Context, appID, title string, seconds int64, at time.Time) error {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return ErrEmptyAppID
	}
	if seconds < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSeconds, seconds)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := upsertApp(ctx, tx, appID, title)
	if err != nil {
		return err
	}
	if err := addDaily(ctx, tx, id, at.Format(dateutil.Layout), seconds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// upsertApp inserts appID if missing, updates its last title and returns its row id.
func upsertApp(ctx context.Context, tx *sqlx.Tx, appID, title string) (int64, error) {
	query := `
		INSERT INTO apps (app_id, display_name, last_title)
		VALUES (?, ?, NULLIF(?, ''))
		ON CONFLICT(app_id) DO UPDATE SET
			last_title = COALESCE(NULLIF(excluded.last_title, ''), apps.last_title)
	`
	if _, err := tx.ExecContext(ctx, query, appID, appID, title); err != nil {
		return 0, fmt.Errorf("upserting app %q: %w", appID, err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, `SELECT id FROM apps WHERE app_id = ?`, appID); err != nil {
		return 0, fmt.Errorf("looking up app %q: %w", appID, err)
	}
	return id, nil
}

func addDaily(ctx context.Context, tx *sqlx.Tx, appRefID int64, date string, seconds int64) error {
	query := `
		INSERT INTO usage_daily (app_ref_id, date, seconds_focused)
		VALUES (?, ?, ?)
		ON CONFLICT(app_ref_id, date) DO UPDATE SET
			seconds_focused = seconds_focused + excluded.seconds_focused
	`
	if _, err := tx.ExecContext(ctx, query, appRefID, date, seconds); err != nil {
		return fmt.Errorf("updating daily usage: %w", err)
	}
	return nil
}

type labelTotal struct {
	Label string `db:"label"`
	Total int64  `db:"total"`
}

// AppUsageRange returns per-app totals between start and end (inclusive),
// ordered by total descending.
func (s *SQLite) AppUsageRange(ctx context.Context, start, end time.Time) ([]usage.Entry, error) {
	query := `
		SELECT COALESCE(a.display_name, a.app_id) AS label, SUM(u.seconds_focused) AS total
		FROM usage_daily u
		JOIN apps a ON u.app_ref_id = a.id
		WHERE u.date >= ? AND u.date <= ?
		GROUP BY label
		ORDER BY total DESC, label ASC
	`

	var rows []labelTotal
	if err := s.db.SelectContext(ctx, &rows, query, start.Format(dateutil.Layout), end.Format(dateutil.Layout)); err != nil {
		return nil, fmt.Errorf("querying app usage: %w", err)
	}

	entries := make([]usage.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, usage.Entry{Label: r.Label, Seconds: r.Total})
	}
	return entries, nil
}

// DailyTotals returns the focused seconds per day between start and end
// (inclusive), keyed by YYYY-MM-DD. Days without data are absent.
func (s *SQLite) DailyTotals(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	query := `
		SELECT date AS label, SUM(seconds_focused) AS total
		FROM usage_daily
		WHERE date >= ? AND date <= ?
		GROUP BY date
		ORDER BY date
	`

	var rows []labelTotal
	if err := s.db.SelectContext(ctx, &rows, query, start.Format(dateutil.Layout), end.Format(dateutil.Layout)); err != nil {
		return nil, fmt.Errorf("querying daily totals: %w", err)
	}

	totals := make(map[string]int64, len(rows))
	for _, r := range rows {
		totals[r.Label] = r.Total
	}
	return totals, nil
}

// Export returns every stored row, newest day first.
func (s *SQLite) Export(ctx context.Context) ([]usage.ExportEntry, error) {
	query := `
		SELECT u.date AS date, a.app_id AS app, u.seconds_focused AS seconds
		FROM usage_daily u
		JOIN apps a ON u.app_ref_id = a.id
		ORDER BY u.date DESC, u.seconds_focused DESC, a.app_id ASC
	`

	rows := []exportRow{}
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("querying export: %w", err)
	}

	entries := make([]usage.ExportEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, usage.ExportEntry{Date: r.Date, App: r.App, Seconds: r.Seconds})
	}
	return entries, nil
}

type exportRow struct {
	Date    string `db:"date"`
	App     string `db:"app"`
	Seconds int64  `db:"seconds"`
}

// ListApps returns every known app with its total focused time.
func (s *SQLite) ListApps(ctx context.Context) ([]usage.AppInfo, error) {
	query := `
		SELECT a.app_id AS app_id,
		       COALESCE(a.display_name, a.app_id) AS display_name,
		       a.last_title AS last_title,
		       COALESCE(SUM(u.seconds_focused), 0) AS seconds
		FROM apps a
		LEFT JOIN usage_daily u ON u.app_ref_id = a.id
		GROUP BY a.id
		ORDER BY seconds DESC, a.app_id ASC
	`

	var rows []struct {
		AppID       string         `db:"app_id"`
		DisplayName string         `db:"display_name"`
		LastTitle   sql.NullString `db:"last_title"`
		Seconds     int64          `db:"seconds"`
	}
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("querying apps: %w", err)
	}

	apps := make([]usage.AppInfo, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, usage.AppInfo{
			AppID:       r.AppID,
			DisplayName: r.DisplayName,
			LastTitle:   r.LastTitle.String,
			Seconds:     r.Seconds,
		})
	}
	return apps, nil
}

// Import merges export rows into the store, adding their seconds to any
// existing totals. It is all-or-nothing.
func (s *SQLite) Import(ctx context.Context, entries []usage.ExportEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, e := range entries {
		app := strings.TrimSpace(e.App)
		if app == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyAppID)
		}
		if e.Seconds < 0 {
			return fmt.Errorf("entry %d: %w", i, ErrNegativeSeconds)
		}
		day, err := dateutil.ParseDate(e.Date)
		if e.Date == "" || err != nil {
			return fmt.Errorf("entry %d: date %q: %w", i, e.Date, dateutil.ErrInvalidDateFormat)
		}

		id, err := upsertApp(ctx, tx, app, "")
		if err != nil {
			return err
		}
		if err := addDaily(ctx, tx, id, day.Format(dateutil.Layout), e.Seconds); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

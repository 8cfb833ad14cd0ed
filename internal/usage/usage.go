// Package usage defines the screen-time domain: views, activity entries,
// dashboard payloads and the storage interfaces behind them.
package usage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// View selects the aggregation window requested by the dashboard.
type View string

const (
	ViewToday View = "today"
	ViewWeek  View = "week"
)

// ErrUnknownView is returned by ParseView for anything but today or week.
var ErrUnknownView = errors.New("unknown view")

// ParseView parses a view name, ignoring case and surrounding whitespace.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case ViewToday:
		return ViewToday, nil
	case ViewWeek:
		return ViewWeek, nil
	}
	return "", fmt.Errorf("%w: %q (want today or week)", ErrUnknownView, s)
}

// Title returns the human label used in tabs and report headings.
func (v View) Title() string {
	if v == ViewWeek {
		return "This Week"
	}
	return "Today"
}

// Toggle returns the other view.
func (v View) Toggle() View {
	if v == ViewWeek {
		return ViewToday
	}
	return ViewWeek
}

// Dashboard is the payload rendered by the live dashboard.
type Dashboard struct {
	TotalSeconds int64   `json:"total_seconds"`
	Apps         []Entry `json:"apps"`
	Chart        []Entry `json:"chart"`
}

// Normalize replaces nil slices with empty ones so they encode as [].
func (d *Dashboard) Normalize() *Dashboard {
	if d.Apps == nil {
		d.Apps = []Entry{}
	}
	if d.Chart == nil {
		d.Chart = []Entry{}
	}
	return d
}

// Request is one dashboard query. A zero Date means today.
type Request struct {
	View View
	Date time.Time
}

// ExportEntry is one row of the raw per-day export.
type ExportEntry struct {
	Date    string `json:"date" yaml:"date"`
	App     string `json:"app" yaml:"app"`
	Seconds int64  `json:"seconds" yaml:"seconds"`
}

// AppInfo describes a tracked application.
type AppInfo struct {
	AppID       string `json:"app_id" yaml:"app_id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	LastTitle   string `json:"last_title" yaml:"last_title"`
	Seconds     int64  `json:"seconds" yaml:"seconds"`
}

// Recorder accumulates focused time.
type Recorder interface {
	LogUsage(ctx context.Context, appID, title string, seconds int64, at time.Time) error
}

// Reader answers aggregate queries. Dates are inclusive calendar days.
type Reader interface {
	AppUsageRange(ctx context.Context, start, end time.Time) ([]Entry, error)
	DailyTotals(ctx context.Context, start, end time.Time) (map[string]int64, error)
	Export(ctx context.Context) ([]ExportEntry, error)
	ListApps(ctx context.Context) ([]AppInfo, error)
}

// Repository is the full storage contract.
type Repository interface {
	Recorder
	Reader
	Import(ctx context.Context, entries []ExportEntry) error
	Close() error
}

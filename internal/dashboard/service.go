// Package dashboard answers the single query the live dashboard polls:
// totals, per-app activity and the weekly chart for a view.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revanthlol/focusd/internal/dateutil"
	"github.com/revanthlol/focusd/internal/usage"
)

// Source fetches a dashboard payload.
type Source interface {
	Fetch(ctx context.Context, req usage.Request) (*usage.Dashboard, error)
}

// Service builds dashboards from local storage.
type Service struct {
	reader usage.Reader
	alias  map[string]string
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAliases maps raw app ids to display names.
func WithAliases(alias map[string]string) Option {
	return func(s *Service) { s.alias = alias }
}

// WithClock overrides the current time, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger.With().Str("component", "dashboard").Logger() }
}

// NewService creates a Service over reader.
func NewService(reader usage.Reader, opts ...Option) *Service {
	s := &Service{
		reader: reader,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Source.
func (s *Service) Fetch(ctx context.Context, req usage.Request) (*usage.Dashboard, error) {
	now := s.now()
	ref := req.Date
	if ref.IsZero() {
		ref = now
	}
	if req.View != usage.ViewToday && req.View != usage.ViewWeek {
		return nil, fmt.Errorf("%w: %q", usage.ErrUnknownView, req.View)
	}

	start, end := usage.Range(req.View, ref, now)

	raw, err := s.reader.AppUsageRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading app usage: %w", err)
	}
	apps := s.applyAliases(raw)

	d := &usage.Dashboard{
		TotalSeconds: usage.TotalSeconds(apps),
		Apps:         apps,
	}

	if req.View == usage.ViewWeek {
		totals, err := s.reader.DailyTotals(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("loading daily totals: %w", err)
		}
		d.Chart = buildChart(start, end, totals)
	}

	s.logger.Debug().
		Str("view", string(req.View)).
		Str("start", start.Format(dateutil.Layout)).
		Str("end", end.Format(dateutil.Layout)).
		Int("apps", len(d.Apps)).
		Int64("total", d.TotalSeconds).
		Msg("dashboard built")

	return d.Normalize(), nil
}

// Apps lists known applications with aliases applied.
func (s *Service) Apps(ctx context.Context) ([]usage.AppInfo, error) {
	apps, err := s.reader.ListApps(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		apps[i].DisplayName = s.displayName(apps[i].AppID)
	}
	return apps, nil
}

// Export returns the raw export rows.
func (s *Service) Export(ctx context.Context) ([]usage.ExportEntry, error) {
	return s.reader.Export(ctx)
}

func (s *Service) displayName(appID string) string {
	if name, ok := s.alias[appID]; ok {
		return name
	}
	return appID
}

// applyAliases renames entries, merges those that share a display name,
// drops blank labels and sorts the result.
func (s *Service) applyAliases(raw []usage.Entry) []usage.Entry {
	index := make(map[string]int, len(raw))
	out := make([]usage.Entry, 0, len(raw))
	for _, e := range raw {
		label := strings.TrimSpace(s.displayName(e.Label))
		if label == "" {
			continue
		}
		if i, ok := index[label]; ok {
			out[i].Seconds += e.Seconds
			continue
		}
		index[label] = len(out)
		out = append(out, usage.Entry{Label: label, Seconds: e.Seconds})
	}
	usage.SortEntries(out)
	return out
}

// buildChart emits one entry per day in [start, end], labelled Mon..Sun.
func buildChart(start, end time.Time, totals map[string]int64) []usage.Entry {
	var chart []usage.Entry
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		chart = append(chart, usage.Entry{
			Label:   d.Format("Mon"),
			Seconds: totals[d.Format(dateutil.Layout)],
		})
	}
	return chart
}

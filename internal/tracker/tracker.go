package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revanthlol/focusd/internal/usage"
)

// Outcome classifies one sample.
type Outcome string

const (
	OutcomeIdle   Outcome = "idle"
	OutcomeNone   Outcome = "none"
	OutcomeLogged Outcome = "logged"
	OutcomeError  Outcome = "error"
)

// Result is what one sample observed.
type Result struct {
	Outcome Outcome
	Window  *Window
}

// Tracker samples the focused window once per interval and records it.
type Tracker struct {
	detector Detector
	idle     IdleChecker
	recorder usage.Recorder
	interval time.Duration

	procName ProcessNamer
	metrics  *Metrics
	now      func() time.Time
	logger   zerolog.Logger
	onSample func(Result)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMetrics records samples into m.
func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) { t.logger = logger.With().Str("component", "tracker").Logger() }
}

// WithProcessNamer overrides the PID to name lookup.
func WithProcessNamer(fn ProcessNamer) Option {
	return func(t *Tracker) { t.procName = fn }
}

// WithClock overrides the current time, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// OnSample registers a callback invoked after every sample.
func OnSample(fn func(Result)) Option {
	return func(t *Tracker) { t.onSample = fn }
}

// New creates a Tracker. A nil idle checker never reports idle.
func New(detector Detector, idle IdleChecker, recorder usage.Recorder, interval time.Duration, opts ...Option) (*Tracker, error) {
	if detector == nil {
		return nil, errors.New("tracker: detector is required")
	}
	if recorder == nil {
		return nil, errors.New("tracker: recorder is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("tracker: interval must be positive, got %s", interval)
	}
	if idle == nil {
		idle = NeverIdle{}
	}

	t := &Tracker{
		detector: detector,
		idle:     idle,
		recorder: recorder,
		interval: interval,
		procName: ProcessName,
		now:      time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Interval returns the sampling interval.
func (t *Tracker) Interval() time.Duration { return t.interval }

// Sample takes one step: check idleness, read the focused window and add
// one interval of focus to it.
func (t *Tracker) Sample(ctx context.Context) (Result, error) {
	res, app, err := t.sample(ctx)
	t.metrics.observe(res.Outcome, app, t.seconds())
	if t.onSample != nil {
		t.onSample(res)
	}
	return res, err
}

func (t *Tracker) sample(ctx context.Context) (Result, string, error) {
	if t.idle.Idle(ctx) {
		return Result{Outcome: OutcomeIdle}, "", nil
	}

	w, err := t.detector.FocusedWindow(ctx)
	if err != nil {
		return Result{Outcome: OutcomeError}, "", fmt.Errorf("reading focused window: %w", err)
	}
	if w == nil {
		return Result{Outcome: OutcomeNone}, "", nil
	}

	app := strings.TrimSpace(w.AppID)
	if app == "" && w.PID > 0 && t.procName != nil {
		if name, err := t.procName(ctx, w.PID); err == nil {
			app = strings.TrimSpace(name)
			w.AppID = app
		} else {
			t.logger.Debug().Err(err).Int("pid", w.PID).Msg("process name lookup failed")
		}
	}
	if app == "" {
		return Result{Outcome: OutcomeNone, Window: w}, "", nil
	}

	if err := t.recorder.LogUsage(ctx, app, w.Title, t.seconds(), t.now()); err != nil {
		return Result{Outcome: OutcomeError, Window: w}, app, fmt.Errorf("recording usage for %s: %w", app, err)
	}
	return Result{Outcome: OutcomeLogged, Window: w}, app, nil
}

func (t *Tracker) seconds() int64 {
	s := int64(t.interval / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// Run sleeps one interval, then samples, until ctx is cancelled. Sample
// errors are logged and the loop continues.
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Info().
		Str("detector", t.detector.Name()).
		Dur("interval", t.interval).
		Msg("tracker started")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("tracker stopped")
			return nil
		case <-ticker.C:
			res, err := t.Sample(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				t.logger.Error().Err(err).Msg("sample failed")
				continue
			}
			ev := t.logger.Debug().Str("outcome", string(res.Outcome))
			if res.Window != nil {
				ev = ev.Str("app", res.Window.AppID).Str("title", res.Window.Title)
			}
			ev.Msg("sample")
		}
	}
}

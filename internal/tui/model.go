// Package tui provides the live terminal dashboard for focusd.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/revanthlol/focusd/internal/config"
	"github.com/revanthlol/focusd/internal/dashboard"
	"github.com/revanthlol/focusd/internal/dateutil"
	"github.com/revanthlol/focusd/internal/tui/commands"
	"github.com/revanthlol/focusd/internal/tui/theme"
	"github.com/revanthlol/focusd/internal/usage"
)

const statusTimeout = 3 * time.Second

// Model is the dashboard state.
type Model struct {
	source  dashboard.Source
	config  *config.Config
	logger  zerolog.Logger
	ctx     context.Context
	nowFunc func() time.Time
	refresh time.Duration

	theme   *theme.Theme
	palette *theme.Palette
	styles  *Styles

	view usage.View
	ref  time.Time // zero follows today
	gen  int       // poll generation; bumped on every view or period change

	data       *usage.Dashboard
	stale      bool
	lastUpdate time.Time

	spinner  spinner.Model
	activity viewport.Model

	width  int
	height int

	statusMsg string
	statusErr bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used for fetch failures and key tracing.
func WithLogger(logger zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger.With().Str("component", "tui").Logger()
	}
}

// WithClock overrides the clock used for period navigation.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
	}
}

// WithContext bounds every fetch by ctx.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithView sets the initial view.
func WithView(v usage.View) ModelOption {
	return func(m *Model) {
		m.view = v
	}
}

// New creates a dashboard model polling source.
func New(source dashboard.Source, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	palette := theme.NewPalette(t)
	styles := NewStyles(palette)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.SpinnerStyle

	refresh := time.Duration(cfg.UI.RefreshMS) * time.Millisecond
	if refresh <= 0 {
		refresh = time.Second
	}

	m := &Model{
		source:   source,
		config:   cfg,
		logger:   zerolog.Nop(),
		ctx:      context.Background(),
		nowFunc:  time.Now,
		refresh:  refresh,
		theme:    t,
		palette:  palette,
		styles:   styles,
		view:     usage.ViewToday,
		spinner:  sp,
		activity: viewport.New(0, 0),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init starts polling: an immediate fetch plus the first tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), commands.Tick(m.refresh, m.gen), m.spinner.Tick)
}

// request is what the current poll generation asks for.
func (m Model) request() usage.Request {
	return usage.Request{View: m.view, Date: m.ref}
}

func (m Model) fetchCmd() tea.Cmd {
	return commands.Fetch(m.ctx, m.source, m.request(), m.gen, m.refresh)
}

// restartPolling abandons in-flight ticks and responses and polls again
// right away.
func (m Model) restartPolling() (Model, tea.Cmd) {
	m.gen++
	return m, tea.Batch(m.fetchCmd(), commands.Tick(m.refresh, m.gen))
}

// periodRef is the reference date the current period is anchored on.
func (m Model) periodRef() time.Time {
	if m.ref.IsZero() {
		return dateutil.TruncateToDay(m.nowFunc())
	}
	return m.ref
}

// setRef moves to ref, returning to live mode when ref lands on the
// current period.
func (m *Model) setRef(ref time.Time) {
	now := m.nowFunc()
	if dateutil.SameDay(ref, now) {
		m.ref = time.Time{}
		return
	}
	if m.view == usage.ViewWeek {
		refMon, _ := dateutil.WeekRange(ref)
		nowMon, _ := dateutil.WeekRange(now)
		if dateutil.SameDay(refMon, nowMon) {
			m.ref = time.Time{}
			return
		}
	}
	m.ref = dateutil.TruncateToDay(ref)
}

// Run starts the dashboard and blocks until the user quits or ctx ends.
func Run(ctx context.Context, source dashboard.Source, cfg *config.Config, logger zerolog.Logger, opts ...ModelOption) error {
	opts = append([]ModelOption{WithLogger(logger), WithContext(ctx)}, opts...)
	model := New(source, cfg, opts...)

	logger.Debug().Str("theme", model.theme.Name).Dur("refresh", model.refresh).Msg("starting dashboard")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

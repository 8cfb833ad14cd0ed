// Package ui implements the focusd command line.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/revanthlol/focusd/internal/config"
	"github.com/revanthlol/focusd/internal/dashboard"
	"github.com/revanthlol/focusd/internal/db"
	"github.com/revanthlol/focusd/internal/logging"
	"github.com/revanthlol/focusd/internal/tracker"
	"github.com/revanthlol/focusd/internal/usage"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	cfgPath string
	repo    usage.Repository
	root    *cobra.Command

	debug   bool
	noColor bool

	out    io.Writer
	errOut io.Writer
	in     io.Reader

	logger    zerolog.Logger
	logCloser io.Closer

	openRepo func(path string) (usage.Repository, error)
	detector func() (tracker.Detector, error)
	idle     tracker.IdleChecker
	now      func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithConfig uses cfg instead of loading one from --config.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) { a.config = cfg }
}

// WithRepository uses repo instead of opening the configured database.
func WithRepository(repo usage.Repository) Option {
	return func(a *App) { a.repo = repo }
}

// WithOutput redirects command output.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithInput sets where interactive prompts read from.
func WithInput(in io.Reader) Option {
	return func(a *App) { a.in = in }
}

// WithDetector overrides focused-window detection.
func WithDetector(fn func() (tracker.Detector, error), idle tracker.IdleChecker) Option {
	return func(a *App) {
		a.detector = fn
		a.idle = idle
	}
}

// WithClock overrides the clock used for reports.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp creates a new CLI application.
func NewApp(opts ...Option) *App {
	a := &App{
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     os.Stdin,
		logger: zerolog.Nop(),
		openRepo: func(path string) (usage.Repository, error) {
			return db.New(path)
		},
		detector: func() (tracker.Detector, error) {
			return tracker.Detect(os.Getenv)
		},
		idle: tracker.NewLogind(tracker.ExecRunner, os.Getenv("XDG_SESSION_ID")),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "focusd",
		Short: "A privacy-respecting screen time tracker",
		Long: `focusd records which application has focus, stores per-day totals in a
local SQLite database and shows them in a live terminal dashboard.

Run "focusd daemon" to start tracking, then "focusd" to open the dashboard.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDashboard(cmd.Context(), "")
		},
	}
	a.root.SetOut(a.out)
	a.root.SetErr(a.errOut)

	a.root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Config file (default ~/.config/focusd/config.toml)")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (the dashboard logs to "+logging.DebugFile+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.dashboardCmd())
	a.root.AddCommand(a.daemonCmd())
	a.root.AddCommand(a.listenCmd())
	a.root.AddCommand(a.reportCmd(usage.ViewToday))
	a.root.AddCommand(a.reportCmd(usage.ViewWeek))
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.appsCmd())
	a.root.AddCommand(a.trayCmd())

	return a
}

// setup loads the configuration and the CLI logger before any command runs.
func (a *App) setup(_ *cobra.Command, _ []string) error {
	if a.noColor {
		DisableColor()
	}

	if a.config == nil {
		path := a.cfgPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	logger, closer, err := logging.NewConsole(a.errOut, logging.Options{
		Level:   a.config.Log.Level,
		File:    a.config.Log.File,
		Debug:   a.debug,
		NoColor: a.noColor,
	})
	if err != nil {
		return err
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	a.logger = logger
	a.logCloser = closer
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "focusd %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := a.openRepo(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// service builds the dashboard service over the local database.
func (a *App) service() (*dashboard.Service, error) {
	return a.serviceWith(a.logger)
}

// Execute runs the CLI application. SIGINT and SIGTERM cancel the command
// context.
func (a *App) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.ExecuteContext(ctx)
}

// ExecuteContext runs the CLI with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// SetArgs sets the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Close releases the database and the log file.
func (a *App) Close() error {
	var firstErr error
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			firstErr = err
		}
		a.repo = nil
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.logCloser = nil
	}
	return firstErr
}

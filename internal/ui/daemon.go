package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/revanthlol/focusd/internal/dashboard"
	"github.com/revanthlol/focusd/internal/logging"
	"github.com/revanthlol/focusd/internal/server"
	"github.com/revanthlol/focusd/internal/tracker"
	"github.com/revanthlol/focusd/internal/tui"
)

func (a *App) dashboardCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the live dashboard (default command)",
		Long: `Open the live terminal dashboard.

By default it reads the local database. With --remote it polls the HTTP API
of a focusd server started with "focusd serve" or "focusd daemon --serve".

Example:
  focusd dashboard --remote 127.0.0.1:7878`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDashboard(cmd.Context(), remote)
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "Poll a focusd server at this address instead of the local database")
	return cmd
}

// runDashboard runs the TUI. It logs through the TUI logger only, since the
// dashboard owns the terminal.
func (a *App) runDashboard(ctx context.Context, remote string) error {
	logger, closer, err := a.dashboardLogger()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	var source dashboard.Source
	if remote != "" {
		client, err := dashboard.NewClient(remote, nil)
		if err != nil {
			return err
		}
		source = client
	} else {
		svc, err := a.serviceWith(logger)
		if err != nil {
			return err
		}
		source = svc
	}

	return tui.Run(ctx, source, a.config, logger)
}

// dashboardLogger hands the log file over to the TUI logger. The console
// logger from setup drops its file sink first so only one handle appends.
func (a *App) dashboardLogger() (zerolog.Logger, io.Closer, error) {
	console, consoleCloser, err := logging.NewConsole(a.errOut, logging.Options{
		Level:   a.config.Log.Level,
		Debug:   a.debug,
		NoColor: a.noColor,
	})
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	a.logger = console
	a.logCloser = consoleCloser

	return logging.NewTUI(logging.Options{
		Level: a.config.Log.Level,
		File:  a.config.Log.File,
		Debug: a.debug,
	})
}

func (a *App) daemonCmd() *cobra.Command {
	var serve bool
	var addr string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Track the focused window",
		Long: `Sample the focused window every interval seconds and add the time to
today's total for its application. Samples are skipped while the session
is idle.

With --serve the HTTP API and Prometheus metrics are served as well.

Example:
  focusd daemon --serve --addr 127.0.0.1:7878`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			trk, det, metrics, err := a.newTracker()
			if err != nil {
				return err
			}
			defer func() { _ = det.Close() }()

			fmt.Fprintln(a.out, colorOK.Sprint("focusd daemon started..."))
			fmt.Fprintf(a.out, "Backend: %s\n", colorEnv.Sprint(det.Name()))

			if !serve {
				return trk.Run(ctx)
			}

			srv, err := a.newServer(metrics)
			if err != nil {
				return err
			}
			listen := a.serverAddr(addr)
			fmt.Fprintf(a.out, "Serving on http://%s\n", listen)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return trk.Run(gctx) })
			g.Go(func() error { return srv.Run(gctx, listen) })
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&serve, "serve", false, "Also serve the HTTP API and metrics")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API without tracking",
		Long: `Serve the dashboard data over HTTP:

  GET /api/data?view=today|week[&date=YYYY-MM-DD]
  GET /api/export
  GET /api/apps
  GET /healthz
  GET /metrics

Example:
  focusd serve --addr 127.0.0.1:7878`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := a.newServer(tracker.NewMetrics())
			if err != nil {
				return err
			}
			listen := a.serverAddr(addr)
			fmt.Fprintf(a.out, "Serving on http://%s\n", listen)
			return srv.Run(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func (a *App) listenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Print the focused window every interval",
		Long: `Debug loop: print the focused window and the idle state every interval
without recording anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			det, err := a.detector()
			if err != nil {
				return fmt.Errorf("starting window detector: %w", err)
			}
			defer func() { _ = det.Close() }()

			fmt.Fprintf(a.out, "Environment: %s\n", colorEnv.Sprint(det.Name()))

			ticker := time.NewTicker(a.interval())
			defer ticker.Stop()
			for {
				listenOnce(ctx, a.out, det, a.idle, tracker.ProcessName)
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
}

// listenOnce prints one observation of the focused window and idle state.
func listenOnce(ctx context.Context, w io.Writer, det tracker.Detector, idle tracker.IdleChecker, procName tracker.ProcessNamer) {
	win, err := det.FocusedWindow(ctx)
	if err == nil && win != nil && strings.TrimSpace(win.AppID) == "" && win.PID > 0 && procName != nil {
		if name, perr := procName(ctx, win.PID); perr == nil {
			win.AppID = name
		}
	}

	switch {
	case err != nil:
		fmt.Fprintf(w, "Focused: None/Idle (or unknown) %s\n", formatMuted("("+err.Error()+")"))
	case win == nil || strings.TrimSpace(win.AppID) == "":
		fmt.Fprintln(w, "Focused: None/Idle (or unknown)")
	default:
		fmt.Fprintf(w, "Focused: [%s] %s\n", colorApp.Sprint(win.AppID), win.Title)
	}

	if idle.Idle(ctx) {
		fmt.Fprintln(w, colorIdle.Sprint(">> IDLE (OS reported user away) <<"))
	}
}

// newTracker wires detection, idle checks, the database and metrics.
func (a *App) newTracker() (*tracker.Tracker, tracker.Detector, *tracker.Metrics, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, nil, nil, err
	}
	det, err := a.detector()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("starting window detector: %w", err)
	}

	metrics := tracker.NewMetrics()
	trk, err := tracker.New(det, a.idle, a.repo, a.interval(),
		tracker.WithMetrics(metrics),
		tracker.WithLogger(a.logger),
		tracker.WithProcessNamer(tracker.ProcessName),
	)
	if err != nil {
		_ = det.Close()
		return nil, nil, nil, err
	}
	return trk, det, metrics, nil
}

func (a *App) newServer(metrics *tracker.Metrics) (*server.Server, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	return server.New(svc, svc, metrics.Registry, a.logger), nil
}

// serviceWith is service with a different logger, for the dashboard.
func (a *App) serviceWith(logger zerolog.Logger) (*dashboard.Service, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	return dashboard.NewService(a.repo,
		dashboard.WithAliases(a.config.Alias),
		dashboard.WithClock(a.now),
		dashboard.WithLogger(logger),
	), nil
}

func (a *App) interval() time.Duration {
	return time.Duration(a.config.Interval) * time.Second
}

func (a *App) serverAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if a.config.Server.Addr != "" {
		return a.config.Server.Addr
	}
	return server.DefaultAddr
}

package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/revanthlol/focusd/internal/server"
	"github.com/revanthlol/focusd/internal/tracker"
	"github.com/revanthlol/focusd/internal/usage"
)

type fakeDetector struct {
	window *tracker.Window
	err    error
}

func (f *fakeDetector) FocusedWindow(context.Context) (*tracker.Window, error) {
	if f.window == nil {
		return nil, f.err
	}
	w := *f.window
	return &w, f.err
}
func (f *fakeDetector) Name() string { return "fake" }
func (f *fakeDetector) Close() error { return nil }

type fakeIdle bool

func (f fakeIdle) Idle(context.Context) bool { return bool(f) }

func TestListenOnce(t *testing.T) {
	DisableColor()
	procName := func(_ context.Context, pid int) (string, error) {
		if pid == 42 {
			return "kitty", nil
		}
		return "", fmt.Errorf("no process %d", pid)
	}

	tests := []struct {
		name  string
		det   *fakeDetector
		idle  bool
		want  []string
		avoid []string
	}{
		{
			name: "focused window",
			det:  &fakeDetector{window: &tracker.Window{AppID: "firefox", Title: "Docs"}},
			want: []string{"Focused: [firefox] Docs"},
		},
		{
			name: "pid fallback",
			det:  &fakeDetector{window: &tracker.Window{Title: "zsh", PID: 42}},
			want: []string{"Focused: [kitty] zsh"},
		},
		{
			name: "nothing focused",
			det:  &fakeDetector{},
			want: []string{"Focused: None/Idle (or unknown)"},
		},
		{
			name: "detector error",
			det:  &fakeDetector{err: errors.New("hyprctl missing")},
			want: []string{"Focused: None/Idle (or unknown)", "hyprctl missing"},
		},
		{
			name: "idle",
			det:  &fakeDetector{window: &tracker.Window{AppID: "code"}},
			idle: true,
			want: []string{"Focused: [code]", ">> IDLE (OS reported user away) <<"},
		},
		{
			name:  "not idle",
			det:   &fakeDetector{window: &tracker.Window{AppID: "code"}},
			avoid: []string{"IDLE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			listenOnce(context.Background(), &buf, tt.det, fakeIdle(tt.idle), procName)
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
			for _, avoid := range tt.avoid {
				if strings.Contains(out, avoid) {
					t.Errorf("output %q should not contain %q", out, avoid)
				}
			}
		})
	}
}

func TestNewTracker_RecordsIntoRepository(t *testing.T) {
	det := &fakeDetector{window: &tracker.Window{AppID: "kitty", Title: "nvim"}}
	ta := newTestApp(t, WithDetector(func() (tracker.Detector, error) { return det, nil }, fakeIdle(false)))
	ta.cfg.Interval = 2
	if _, err := ta.run(t, "version"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	trk, _, metrics, err := ta.app.newTracker()
	if err != nil {
		t.Fatalf("newTracker failed: %v", err)
	}
	if metrics == nil || metrics.Registry == nil {
		t.Fatal("expected metrics registry")
	}
	if trk.Interval() != 2*time.Second {
		t.Errorf("Interval = %s, want 2s", trk.Interval())
	}

	res, err := trk.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if res.Outcome != tracker.OutcomeLogged {
		t.Fatalf("Outcome = %s, want logged", res.Outcome)
	}

	apps, err := ta.repo.ListApps(context.Background())
	if err != nil {
		t.Fatalf("ListApps failed: %v", err)
	}
	if len(apps) != 1 || apps[0].AppID != "kitty" || apps[0].Seconds != 2 {
		t.Errorf("apps = %+v, want kitty with 2s", apps)
	}
}

func TestNewTracker_DetectorError(t *testing.T) {
	ta := newTestApp(t, WithDetector(func() (tracker.Detector, error) {
		return nil, errors.New("no display")
	}, nil))
	if _, err := ta.run(t, "daemon"); err == nil || !strings.Contains(err.Error(), "no display") {
		t.Errorf("expected detector error, got %v", err)
	}
}

func TestDashboardLogger_TakesOverLogFile(t *testing.T) {
	ta := newTestApp(t)
	path := filepath.Join(t.TempDir(), "focusd.log")
	ta.cfg.Log.File = path
	if _, err := ta.run(t, "version"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, ok := ta.app.logCloser.(*os.File); !ok {
		t.Fatalf("setup should open the log file, closer is %T", ta.app.logCloser)
	}

	logger, closer, err := ta.app.dashboardLogger()
	if err != nil {
		t.Fatalf("dashboardLogger failed: %v", err)
	}
	defer func() { _ = closer.Close() }()

	if _, ok := ta.app.logCloser.(*os.File); ok {
		t.Error("console logger still holds the log file")
	}

	ta.app.logger.Info().Msg("console line")
	logger.Info().Msg("dashboard line")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if n := strings.Count(string(data), "dashboard line"); n != 1 {
		t.Errorf("dashboard line written %d times, want 1:\n%s", n, data)
	}
	if strings.Contains(string(data), "console line") {
		t.Errorf("console output reached the log file:\n%s", data)
	}
	if !strings.Contains(ta.errOut.String(), "console line") {
		t.Errorf("console output missing from stderr: %q", ta.errOut.String())
	}
}

func TestServerAddr(t *testing.T) {
	ta := newTestApp(t)
	if _, err := ta.run(t, "version"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if got := ta.app.serverAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("flag address = %q", got)
	}
	ta.cfg.Server.Addr = "127.0.0.1:9999"
	if got := ta.app.serverAddr(""); got != "127.0.0.1:9999" {
		t.Errorf("config address = %q", got)
	}
	ta.cfg.Server.Addr = ""
	if got := ta.app.serverAddr(""); got != server.DefaultAddr {
		t.Errorf("default address = %q", got)
	}
}

func TestTrayTitle(t *testing.T) {
	if got := trayTitle(nil); got != "--" {
		t.Errorf("trayTitle(nil) = %q, want --", got)
	}
	if got := trayTitle(&usage.Dashboard{TotalSeconds: 5400}); got != "1h 30m" {
		t.Errorf("trayTitle = %q, want 1h 30m", got)
	}
}

func TestTrayIcon(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(trayIcon()))
	if err != nil {
		t.Fatalf("icon is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 22 || b.Dy() != 22 {
		t.Errorf("icon size = %dx%d, want 22x22", b.Dx(), b.Dy())
	}
	if _, _, _, a := img.At(11, 11).RGBA(); a == 0 {
		t.Error("centre dot should be opaque")
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner should be transparent")
	}
}

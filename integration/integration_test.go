package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/revanthlol/focusd/internal/dashboard"
	"github.com/revanthlol/focusd/internal/db"
	"github.com/revanthlol/focusd/internal/server"
	"github.com/revanthlol/focusd/internal/tracker"
	"github.com/revanthlol/focusd/internal/usage"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// desktop is a scripted session: the focused window and idle state can be
// changed between samples.
type desktop struct {
	mu     sync.Mutex
	window *tracker.Window
	idle   bool
}

func (d *desktop) focus(appID, title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.window = &tracker.Window{AppID: appID, Title: title}
}

func (d *desktop) setIdle(idle bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.idle = idle
}

func (d *desktop) FocusedWindow(context.Context) (*tracker.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.window == nil {
		return nil, nil
	}
	w := *d.window
	return &w, nil
}

func (d *desktop) Name() string { return "scripted" }
func (d *desktop) Close() error { return nil }

func (d *desktop) Idle(context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.idle
}

// clock is a settable time source shared by the tracker and the service.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func sample(t *testing.T, trk *tracker.Tracker, want tracker.Outcome) {
	t.Helper()
	res, err := trk.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if res.Outcome != want {
		t.Fatalf("Outcome = %s, want %s", res.Outcome, want)
	}
}

func TestTrackAndServe(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	clk := &clock{now: time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local)} // Wednesday
	desk := &desktop{}

	metrics := tracker.NewMetrics()
	trk, err := tracker.New(desk, desk, repo, 2*time.Second,
		tracker.WithClock(clk.Now),
		tracker.WithMetrics(metrics),
	)
	if err != nil {
		t.Fatalf("tracker.New failed: %v", err)
	}

	// Monday: one sample of kitty.
	clk.Set(time.Date(2025, 1, 6, 9, 0, 0, 0, time.Local))
	desk.focus("kitty", "nvim")
	sample(t, trk, tracker.OutcomeLogged)

	// Wednesday: kitty twice, idle once, firefox once, nothing focused once.
	clk.Set(time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local))
	sample(t, trk, tracker.OutcomeLogged)
	sample(t, trk, tracker.OutcomeLogged)
	desk.setIdle(true)
	sample(t, trk, tracker.OutcomeIdle)
	desk.setIdle(false)
	desk.focus("org.mozilla.firefox", "Docs")
	sample(t, trk, tracker.OutcomeLogged)
	desk.focus("", "")
	sample(t, trk, tracker.OutcomeNone)

	svc := dashboard.NewService(repo,
		dashboard.WithAliases(map[string]string{"org.mozilla.firefox": "Firefox"}),
		dashboard.WithClock(clk.Now),
	)
	ts := httptest.NewServer(server.New(svc, svc, metrics.Registry, zerolog.Nop()))
	defer ts.Close()

	client, err := dashboard.NewClient(ts.URL, ts.Client())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	today, err := client.Fetch(ctx, usage.Request{View: usage.ViewToday})
	if err != nil {
		t.Fatalf("Fetch today failed: %v", err)
	}
	if today.TotalSeconds != 6 {
		t.Errorf("today total = %d, want 6", today.TotalSeconds)
	}
	wantApps := []usage.Entry{{Label: "kitty", Seconds: 4}, {Label: "Firefox", Seconds: 2}}
	if len(today.Apps) != len(wantApps) {
		t.Fatalf("today apps = %+v, want %+v", today.Apps, wantApps)
	}
	for i, want := range wantApps {
		if today.Apps[i] != want {
			t.Errorf("today.Apps[%d] = %+v, want %+v", i, today.Apps[i], want)
		}
	}
	if len(today.Chart) != 0 {
		t.Errorf("today view should have no chart, got %+v", today.Chart)
	}

	week, err := client.Fetch(ctx, usage.Request{View: usage.ViewWeek})
	if err != nil {
		t.Fatalf("Fetch week failed: %v", err)
	}
	if week.TotalSeconds != 8 {
		t.Errorf("week total = %d, want 8", week.TotalSeconds)
	}
	wantChart := []usage.Entry{{Label: "Mon", Seconds: 2}, {Label: "Tue", Seconds: 0}, {Label: "Wed", Seconds: 6}}
	if len(week.Chart) != len(wantChart) {
		t.Fatalf("week chart = %+v, want %+v", week.Chart, wantChart)
	}
	for i, want := range wantChart {
		if week.Chart[i] != want {
			t.Errorf("week.Chart[%d] = %+v, want %+v", i, week.Chart[i], want)
		}
	}

	monday, err := client.Fetch(ctx, usage.Request{View: usage.ViewToday, Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)})
	if err != nil {
		t.Fatalf("Fetch monday failed: %v", err)
	}
	if monday.TotalSeconds != 2 || len(monday.Apps) != 1 || monday.Apps[0].Label != "kitty" {
		t.Errorf("monday = %+v, want kitty 2s", monday)
	}

	apps, err := client.Apps(ctx)
	if err != nil {
		t.Fatalf("Apps failed: %v", err)
	}
	if len(apps) != 2 || apps[0].AppID != "kitty" || apps[1].DisplayName != "Firefox" || apps[1].LastTitle != "Docs" {
		t.Errorf("apps = %+v", apps)
	}

	metricsBody := get(t, ts.URL+"/metrics")
	for _, want := range []string{
		`focusd_tracked_seconds_total{app="kitty"} 6`,
		`focusd_samples_total{outcome="idle"} 1`,
		`focusd_samples_total{outcome="none"} 1`,
	} {
		if !strings.Contains(metricsBody, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMidnightSplitsDays(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	clk := &clock{}
	desk := &desktop{}
	desk.focus("kitty", "")

	trk, err := tracker.New(desk, desk, repo, time.Second, tracker.WithClock(clk.Now))
	if err != nil {
		t.Fatalf("tracker.New failed: %v", err)
	}

	clk.Set(time.Date(2025, 1, 7, 23, 59, 59, 0, time.Local))
	sample(t, trk, tracker.OutcomeLogged)
	clk.Set(time.Date(2025, 1, 8, 0, 0, 1, 0, time.Local))
	sample(t, trk, tracker.OutcomeLogged)
	sample(t, trk, tracker.OutcomeLogged)

	rows, err := repo.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := []usage.ExportEntry{
		{Date: "2025-01-08", App: "kitty", Seconds: 2},
		{Date: "2025-01-07", App: "kitty", Seconds: 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestExportImportAcrossDatabases(t *testing.T) {
	ctx := context.Background()
	src := openRepo(t)
	at := time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local)
	for _, app := range []string{"kitty", "kitty", "code"} {
		if err := src.LogUsage(ctx, app, "", 30, at); err != nil {
			t.Fatalf("LogUsage failed: %v", err)
		}
	}

	rows, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := openRepo(t)
	if err := dst.LogUsage(ctx, "kitty", "", 10, at); err != nil {
		t.Fatalf("LogUsage failed: %v", err)
	}
	if err := dst.Import(ctx, rows); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	svc := dashboard.NewService(dst, dashboard.WithClock(func() time.Time { return at }))
	d, err := svc.Fetch(ctx, usage.Request{View: usage.ViewToday})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if d.TotalSeconds != 100 {
		t.Errorf("total = %d, want 100", d.TotalSeconds)
	}
	if d.Apps[0] != (usage.Entry{Label: "kitty", Seconds: 70}) {
		t.Errorf("top app = %+v, want kitty 70s", d.Apps[0])
	}
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(body)
}

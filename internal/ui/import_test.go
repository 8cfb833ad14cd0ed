package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/revanthlol/focusd/internal/db"
	"github.com/revanthlol/focusd/internal/usage"
)

func TestExportImport_RoundTrip(t *testing.T) {
	for _, format := range []string{formatJSON, formatYAML} {
		t.Run(format, func(t *testing.T) {
			src := newTestApp(t)
			src.log(t, "kitty", "nvim", 300, testNow)
			src.log(t, "firefox", "Docs", 120, testNow)
			src.log(t, "kitty", "nvim", 60, testNow.AddDate(0, 0, -2))

			out, err := src.run(t, "export", "--format", format)
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}

			path := filepath.Join(t.TempDir(), "backup."+format)
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				t.Fatalf("writing export: %v", err)
			}

			dst := newTestApp(t)
			msg, err := dst.run(t, "import", path)
			if err != nil {
				t.Fatalf("import failed: %v", err)
			}
			if !strings.Contains(msg, "Imported 3 rows") {
				t.Errorf("unexpected import message %q", msg)
			}

			want, err := src.repo.Export(context.Background())
			if err != nil {
				t.Fatalf("source export failed: %v", err)
			}
			got, err := dst.repo.Export(context.Background())
			if err != nil {
				t.Fatalf("destination export failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestImport_AddsToExistingTotals(t *testing.T) {
	ta := newTestApp(t)
	ta.log(t, "kitty", "", 100, testNow)

	path := filepath.Join(t.TempDir(), "backup.json")
	data := `[{"date":"2025-01-08","app":"kitty","seconds":50}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if _, err := importFile(context.Background(), ta.repo, path); err != nil {
		t.Fatalf("importFile failed: %v", err)
	}

	rows, err := ta.repo.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := []usage.ExportEntry{{Date: "2025-01-08", App: "kitty", Seconds: 150}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %+v, want %+v", rows, want)
	}
}

func TestImport_RejectsWholeFile(t *testing.T) {
	ctx := context.Background()
	repo, err := db.New(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("opening repo: %v", err)
	}
	defer func() { _ = repo.Close() }()

	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		data string
	}{
		{"blank app", "blank.json", `[{"date":"2025-01-08","app":"kitty","seconds":5},{"date":"2025-01-08","app":"  ","seconds":5}]`},
		{"negative seconds", "negative.json", `[{"date":"2025-01-08","app":"kitty","seconds":-5}]`},
		{"bad date", "date.yaml", "- date: 08/01/2025\n  app: kitty\n  seconds: 5\n"},
		{"not json", "garbage.json", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatalf("writing file: %v", err)
			}
			if _, err := importFile(ctx, repo, path); err == nil {
				t.Fatal("expected import error")
			}
			rows, err := repo.Export(ctx)
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if len(rows) != 0 {
				t.Errorf("failed import left %d rows behind", len(rows))
			}
		})
	}
}

func TestImport_PathErrors(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()

	if _, err := importFile(context.Background(), ta.repo, filepath.Join(dir, "missing.json")); err == nil ||
		!strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected missing file error, got %v", err)
	}
	if _, err := importFile(context.Background(), ta.repo, dir); err == nil ||
		!strings.Contains(err.Error(), "is a directory") {
		t.Errorf("expected directory error, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	rows := []usage.ExportEntry{{Date: "2025-01-08", App: "kitty", Seconds: 42}}

	var buf bytes.Buffer
	if err := writeExport(&buf, nil, formatJSON); err != nil {
		t.Fatalf("writeExport failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty export = %q, want []", buf.String())
	}

	buf.Reset()
	if err := writeExport(&buf, rows, formatJSON); err != nil {
		t.Fatalf("writeExport failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"app": "kitty"`) {
		t.Errorf("json export missing indented field: %q", buf.String())
	}

	buf.Reset()
	if err := writeExport(&buf, rows, "YAML"); err != nil {
		t.Fatalf("writeExport failed: %v", err)
	}
	for _, want := range []string{"- date:", "2025-01-08", "\n  app: kitty\n", "\n  seconds: 42\n"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("yaml export %q missing %q", buf.String(), want)
		}
	}

	if err := writeExport(&buf, rows, "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := resolvePath("~/backup.json")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if want := filepath.Join(home, "backup.json"); got != want {
		t.Errorf("resolvePath(~) = %q, want %q", got, want)
	}

	if _, err := resolvePath("   "); err == nil {
		t.Error("expected error for empty path")
	}
}

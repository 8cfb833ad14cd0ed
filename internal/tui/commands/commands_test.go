package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/revanthlol/focusd/internal/usage"
)

type stubSource struct {
	d   *usage.Dashboard
	err error

	deadline bool
}

func (s *stubSource) Fetch(ctx context.Context, _ usage.Request) (*usage.Dashboard, error) {
	_, s.deadline = ctx.Deadline()
	return s.d, s.err
}

func TestFetch(t *testing.T) {
	src := &stubSource{d: &usage.Dashboard{TotalSeconds: 5}}
	req := usage.Request{View: usage.ViewWeek}

	msg := Fetch(context.Background(), src, req, 3, time.Second)()
	got, ok := msg.(DashboardMsg)
	if !ok {
		t.Fatalf("expected DashboardMsg, got %T", msg)
	}
	if got.Gen != 3 || got.Request != req || got.Dashboard.TotalSeconds != 5 || got.Err != nil {
		t.Errorf("unexpected msg %+v", got)
	}
	if !src.deadline {
		t.Error("fetch context should carry a deadline")
	}
}

func TestFetch_Error(t *testing.T) {
	src := &stubSource{err: errors.New("offline")}

	got := Fetch(nil, src, usage.Request{View: usage.ViewToday}, 1, time.Second)().(DashboardMsg) //nolint:staticcheck // nil ctx falls back to Background
	if got.Err == nil || got.Dashboard != nil {
		t.Errorf("expected error msg, got %+v", got)
	}
}

func TestCopyToClipboard(t *testing.T) {
	orig := WriteClipboard
	defer func() { WriteClipboard = orig }()

	var written string
	WriteClipboard = func(s string) error {
		written = s
		return nil
	}

	msg := CopyToClipboard("Total: 1m 0s")()
	if _, ok := msg.(StatusMsg); !ok {
		t.Fatalf("expected StatusMsg, got %T", msg)
	}
	if written != "Total: 1m 0s" {
		t.Errorf("clipboard got %q", written)
	}

	WriteClipboard = func(string) error { return errors.New("no clipboard utility") }
	if _, ok := CopyToClipboard("x")().(ErrMsg); !ok {
		t.Error("expected ErrMsg when clipboard fails")
	}
}

package tracker

import (
	"bytes"
	"context"
)

// Logind asks systemd-logind whether the session reports IdleHint.
type Logind struct {
	run     Runner
	session string
}

// NewLogind creates an idle checker for session, usually $XDG_SESSION_ID.
func NewLogind(run Runner, session string) *Logind {
	return &Logind{run: run, session: session}
}

// Idle implements IdleChecker. A missing session or any error counts as
// not idle.
func (l *Logind) Idle(ctx context.Context) bool {
	if l.session == "" {
		return false
	}
	out, err := l.run(ctx, "loginctl", "show-session", l.session, "-p", "IdleHint")
	if err != nil {
		return false
	}
	return bytes.Equal(bytes.TrimSpace(out), []byte("IdleHint=yes"))
}

// NeverIdle is an IdleChecker that always reports activity.
type NeverIdle struct{}

// Idle implements IdleChecker.
func (NeverIdle) Idle(context.Context) bool { return false }

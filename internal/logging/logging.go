// Package logging builds the zerolog loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DebugFile is where the dashboard logs when --debug is set.
const DebugFile = "focusd-debug.log"

// Options selects where and how much to log.
type Options struct {
	Level   string // zerolog level name; empty means info
	File    string // log file path; empty means no file
	Debug   bool   // force debug level
	NoColor bool
}

func level(opts Options) (zerolog.Level, error) {
	if opts.Debug {
		return zerolog.DebugLevel, nil
	}
	if opts.Level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level: %w", err)
	}
	return lvl, nil
}

// NewConsole returns a human-readable logger writing to w (normally stderr),
// plus a JSON copy to opts.File when set. The returned closer releases the file.
func NewConsole(w io.Writer, opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := level(opts)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: w, NoColor: opts.NoColor, TimeFormat: "15:04:05"}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := openFile(opts.File)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		out = zerolog.MultiLevelWriter(out, f)
		closer = f
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

// NewTUI returns a logger for the dashboard, which owns the terminal.
// It writes JSON to DebugFile when opts.Debug is set, to opts.File when
// configured, and discards otherwise.
func NewTUI(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := level(opts)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	path := opts.File
	if opts.Debug {
		path = DebugFile
	}
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	f, err := openFile(path)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	logger := zerolog.New(f).Level(lvl).With().Timestamp().Caller().Logger()
	return logger, f, nil
}

func openFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging configures slog for logview.
//
// Debug logs go to a rotating file so they never draw over the interactive
// table. Otherwise only warnings are kept, and only when a plain output
// stream can take them.
package logging

import (
	"cmp"
	"io"
	"log/slog"
	"strings"

	"github.com/docker/logview/pkg/paths"
)

// Options selects where logs go.
type Options struct {
	// Debug enables debug logs written to File.
	Debug bool
	// File overrides the default debug log path.
	File string
	// Stderr receives warnings when Debug is off. Nil discards them.
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the logger for opts. The returned closer must be closed once
// logging is no longer needed.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if !opts.Debug {
		if opts.Stderr == nil {
			return slog.New(slog.DiscardHandler), nopCloser{}, nil
		}
		h := slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
		return slog.New(h), nopCloser{}, nil
	}

	path := cmp.Or(strings.TrimSpace(opts.File), paths.DebugLogFile())
	f, err := NewRotatingFile(path)
	if err != nil {
		return nil, nil, err
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), f, nil
}

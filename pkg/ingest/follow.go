package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval bounds how long a followed file waits for a change
// notification before checking for new data anyway.
const DefaultPollInterval = time.Second

var errFileGone = errors.New("followed file was removed or renamed")

// FollowOption configures Follow.
type FollowOption func(*followReader)

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) FollowOption {
	return func(r *followReader) {
		r.poll = d
	}
}

// Follow wraps f in a reader that behaves like "tail -f": at end of file it
// waits for the file to grow instead of reporting io.EOF. It reports io.EOF
// once ctx is done or the file is removed or renamed. A file truncated in
// place is read again from the start.
//
// Change notifications come from fsnotify; when a watcher cannot be set up
// the reader falls back to polling.
func Follow(ctx context.Context, f *os.File, opts ...FollowOption) io.ReadCloser {
	r := &followReader{
		ctx:  ctx,
		file: f,
		poll: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("Failed to create file watcher, polling instead", "path", f.Name(), "error", err)
		return r
	}
	if err := watcher.Add(f.Name()); err != nil {
		slog.Warn("Failed to watch file, polling instead", "path", f.Name(), "error", err)
		watcher.Close()
		return r
	}
	r.watcher = watcher

	slog.Debug("Following file", "path", f.Name())
	return r
}

type followReader struct {
	ctx     context.Context
	file    *os.File
	watcher *fsnotify.Watcher
	poll    time.Duration
}

func (r *followReader) Read(p []byte) (int, error) {
	for {
		n, err := r.file.Read(p)
		if n > 0 {
			return n, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}

		if err := r.wait(); err != nil {
			slog.Debug("Stopped following file", "path", r.file.Name(), "reason", err)
			return 0, io.EOF
		}
		r.rewindIfTruncated()
	}
}

// wait blocks until the file may have new data. A non-nil error means
// following is over.
func (r *followReader) wait() error {
	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if r.watcher != nil {
		events = r.watcher.Events
		errs = r.watcher.Errors
	}

	timer := time.NewTimer(r.poll)
	defer timer.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return r.ctx.Err()

		case <-timer.C:
			if _, err := os.Stat(r.file.Name()); errors.Is(err, os.ErrNotExist) {
				return errFileGone
			}
			return nil

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				return errFileGone
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				return nil
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("File watcher error", "path", r.file.Name(), "error", err)
		}
	}
}

func (r *followReader) rewindIfTruncated() {
	info, err := r.file.Stat()
	if err != nil {
		return
	}
	pos, err := r.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return
	}
	if info.Size() < pos {
		slog.Debug("Followed file was truncated, reading from the start", "path", r.file.Name())
		_, _ = r.file.Seek(0, io.SeekStart)
	}
}

// Close stops watching and closes the file.
func (r *followReader) Close() error {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
	return r.file.Close()
}

package ingest

import (
	"sync"
	"sync/atomic"
)

// Live reports whether the input stream is still open. It starts open and
// is closed exactly once; it never reopens.
type Live struct {
	open atomic.Bool
	once sync.Once
	done chan struct{}
}

// NewLive returns an open flag.
func NewLive() *Live {
	l := &Live{done: make(chan struct{})}
	l.open.Store(true)
	return l
}

// IsOpen reports whether ingestion is still in progress.
func (l *Live) IsOpen() bool {
	return l.open.Load()
}

// Close marks the stream as finished. Calling it more than once is a no-op.
func (l *Live) Close() {
	l.once.Do(func() {
		l.open.Store(false)
		close(l.done)
	})
}

// Done returns a channel that is closed when the stream is closed.
func (l *Live) Done() <-chan struct{} {
	return l.done
}

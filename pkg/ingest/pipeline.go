// Package ingest reads a line-oriented byte stream, parses every non-blank
// line and appends the accepted rows to a document.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/docker/logview/pkg/document"
	"github.com/docker/logview/pkg/parser"
)

// Stats counts what the pipeline has seen so far.
type Stats struct {
	BytesRead int64
	Lines     int64
	Blank     int64
	Rejected  int64
	Rows      int64
}

type counters struct {
	bytesRead atomic.Int64
	lines     atomic.Int64
	blank     atomic.Int64
	rejected  atomic.Int64
	rows      atomic.Int64
}

// Pipeline drives one input stream into a document. It is the only writer
// of the document and the only closer of the live flag.
type Pipeline struct {
	src    io.Reader
	kind   parser.Kind
	doc    *document.Document
	live   *Live
	counts counters
}

// New creates a pipeline reading from src with the given parser.
func New(src io.Reader, kind parser.Kind, doc *document.Document, live *Live) *Pipeline {
	return &Pipeline{
		src:  src,
		kind: kind,
		doc:  doc,
		live: live,
	}
}

// Document returns the document the pipeline appends to.
func (p *Pipeline) Document() *document.Document {
	return p.doc
}

// Live returns the flag closed when the stream ends.
func (p *Pipeline) Live() *Live {
	return p.live
}

// Parser returns the selected parser.
func (p *Pipeline) Parser() parser.Kind {
	return p.kind
}

// Stats returns the current counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		BytesRead: p.counts.bytesRead.Load(),
		Lines:     p.counts.lines.Load(),
		Blank:     p.counts.blank.Load(),
		Rejected:  p.counts.rejected.Load(),
		Rows:      p.counts.rows.Load(),
	}
}

// Run reads lines until end of input, a read error or cancellation, then
// closes the live flag. End of input returns nil. A read error ends the
// stream like end of input does and is returned for reporting only.
//
// Cancellation is checked between lines; a read blocked on the source is not
// interrupted.
func (p *Pipeline) Run(ctx context.Context) error {
	defer p.live.Close()

	r := bufio.NewReader(&countingReader{r: p.src, n: &p.counts.bytesRead})
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.ReadString('\n')
		if line != "" {
			p.handle(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Debug("Input closed", "lines", p.counts.lines.Load(), "rows", p.counts.rows.Load())
				return nil
			}
			slog.Warn("Failed to read input, closing stream", "error", err)
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// Start runs the pipeline on its own goroutine.
func (p *Pipeline) Start(ctx context.Context) {
	go func() {
		if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Ingestion stopped", "error", err)
		}
	}()
}

func (p *Pipeline) handle(line string) {
	p.counts.lines.Add(1)

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = strings.ToValidUTF8(line, "\uFFFD")

	if strings.TrimSpace(line) == "" {
		p.counts.blank.Add(1)
		return
	}

	row, ok := p.kind.Parse(line)
	if !ok {
		p.counts.rejected.Add(1)
		slog.Debug("Line rejected", "parser", p.kind.String(), "line", line)
		return
	}

	p.doc.Append(row)
	p.counts.rows.Add(1)
}

type countingReader struct {
	r io.Reader
	n *atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// Package printer writes a document as an aligned plain-text table.
package printer

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/docker/logview/pkg/document"
)

const columnGap = "  "

// Printer prints the rows of a document that it has not printed yet.
// It is not safe for concurrent use.
type Printer struct {
	w        io.Writer
	doc      *document.Document
	maxWidth int
	maxCell  int
	colors   map[document.Style]*color.Color
	next     int
}

// Option configures a Printer.
type Option func(*Printer)

// WithLineWidth truncates every printed line to width terminal columns.
// Zero means no limit.
func WithLineWidth(width int) Option {
	return func(p *Printer) {
		p.maxWidth = width
	}
}

// WithMaxColumnWidth truncates cells wider than width. Zero means no limit.
func WithMaxColumnWidth(width int) Option {
	return func(p *Printer) {
		p.maxCell = width
	}
}

// WithColor colours styled cells with ANSI escapes.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		if enabled {
			p.colors = newPalette()
		} else {
			p.colors = nil
		}
	}
}

func newPalette() map[document.Style]*color.Color {
	palette := map[document.Style]*color.Color{
		document.StyleError:      color.New(color.FgRed, color.Bold),
		document.StyleWarning:    color.New(color.FgYellow),
		document.StyleInfo:       color.New(color.FgGreen),
		document.StyleDebug:      color.New(color.FgCyan),
		document.StyleTrace:      color.New(color.Faint),
		document.StyleUnknown:    color.New(color.Faint),
		document.StyleUnit:       color.New(color.FgBlue),
		document.StyleIdentifier: color.New(color.FgMagenta),
		document.StyleProcess:    color.New(color.FgCyan),
	}
	// Forced on: the caller has already checked the terminal.
	for _, c := range palette {
		c.EnableColor()
	}
	return palette
}

// New creates a printer for doc writing to w.
func New(w io.Writer, doc *document.Document, opts ...Option) *Printer {
	p := &Printer{w: w, doc: doc}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Printed returns how many rows have been written.
func (p *Printer) Printed() int {
	return p.next
}

// Flush writes every row appended since the previous call, aligned to the
// column widths known now.
func (p *Printer) Flush() error {
	snap := p.doc.Snapshot(p.next, p.doc.RowCount())
	if len(snap.Rows) == 0 {
		return nil
	}

	widths := p.columnWidths(snap.DisplayWidths)
	bw := bufio.NewWriter(p.w)
	var line strings.Builder
	for _, row := range snap.Rows {
		line.Reset()
		p.formatRow(&line, row, widths)
		out := strings.TrimRight(line.String(), " ")
		if p.maxWidth > 0 {
			out = ansi.Truncate(out, p.maxWidth, "…")
		}
		if _, err := bw.WriteString(out + "\n"); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	p.next = snap.Offset + len(snap.Rows)
	return nil
}

// columnWidths applies the cell limit to the cached display widths.
func (p *Printer) columnWidths(cols []int) []int {
	widths := make([]int, len(cols))
	for i, n := range cols {
		if p.maxCell > 0 {
			n = min(n, p.maxCell)
		}
		widths[i] = n
	}
	return widths
}

func (p *Printer) formatRow(b *strings.Builder, row document.Row, widths []int) {
	for i, width := range widths {
		if i > 0 {
			b.WriteString(columnGap)
		}
		cell := row.Cell(i)
		text, w := cell.Display(), cell.Width()
		if w > width {
			text = runewidth.Truncate(text, width, "…")
			w = runewidth.StringWidth(text)
		}
		pad := max(0, width-w)
		if c, ok := p.colors[cell.Style]; ok && text != "" {
			text = c.Sprint(text)
		}
		b.WriteString(text)
		b.WriteString(strings.Repeat(" ", pad))
	}
}

// Package document holds the in-memory table built from parsed input lines:
// an append-only list of rows plus a per-column maximum character count that
// is maintained as rows arrive, so readers never have to re-scan history to
// lay out columns.
package document

import "sync"

// Document is safe for one writer and any number of readers.
// Rows and the column-width cache are guarded by the same lock, so a reader
// never observes a row without its width update.
type Document struct {
	mu     sync.RWMutex
	rows   []Row
	widths []int
	// cols is the per-column maximum display width in terminal columns,
	// updated together with widths.
	cols []int
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// Append stores row at the end of the document and widens the column cache
// to cover it. Cost is proportional to the row's width.
func (d *Document) Append(row Row) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := row.Len(); n > len(d.widths) {
		d.widths = append(d.widths, make([]int, n-len(d.widths))...)
		d.cols = append(d.cols, make([]int, n-len(d.cols))...)
	}
	for i, c := range row.cells {
		d.widths[i] = max(d.widths[i], c.Len())
		d.cols[i] = max(d.cols[i], c.Width())
	}
	d.rows = append(d.rows, row)
}

// RowCount returns the number of rows appended so far.
func (d *Document) RowCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.rows)
}

// ColumnCount returns the widest row width seen so far.
func (d *Document) ColumnCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.widths)
}

// Row returns the row at index. The boolean is false when index is out of
// range, which readers should treat as "not yet available".
func (d *Document) Row(index int) (Row, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if index < 0 || index >= len(d.rows) {
		return Row{}, false
	}
	return d.rows[index], true
}

// ColumnWidths returns a copy of the cached per-column character counts.
func (d *Document) ColumnWidths() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]int(nil), d.widths...)
}

// DisplayWidths returns a copy of the cached per-column display widths in
// terminal columns.
func (d *Document) DisplayWidths() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]int(nil), d.cols...)
}

// RenderedColumnWidths maps every cached character count through measure,
// which converts a count into presentation units (terminal cells, pixels).
// measure also gets the cached display width of the same column, for
// renderers that lay out in terminal columns. It is called outside the lock.
func (d *Document) RenderedColumnWidths(measure func(chars, cols int) int) []int {
	d.mu.RLock()
	widths := append([]int(nil), d.widths...)
	cols := append([]int(nil), d.cols...)
	d.mu.RUnlock()

	for i, w := range widths {
		widths[i] = measure(w, cols[i])
	}
	return widths
}

// Snapshot is a consistent view of a window of rows together with the
// column widths at the moment it was taken.
type Snapshot struct {
	// Widths are the per-column character counts.
	Widths []int
	// DisplayWidths are the per-column widths in terminal columns.
	DisplayWidths []int
	// Rows holds rows [Offset, Offset+len(Rows)).
	Rows []Row
	// Offset is the index of Rows[0] in the document.
	Offset int
	// Total is the document row count when the snapshot was taken.
	Total int
}

// Snapshot returns rows in [from, to) and the current widths under a single
// read lock. The range is clamped to the rows available.
func (d *Document) Snapshot(from, to int) Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := len(d.rows)
	from = max(0, min(from, total))
	to = max(from, min(to, total))

	// Rows are never mutated after append, so sharing the backing array is fine.
	return Snapshot{
		Widths:        append([]int(nil), d.widths...),
		DisplayWidths: append([]int(nil), d.cols...),
		Rows:          d.rows[from:to:to],
		Offset:        from,
		Total:         total,
	}
}

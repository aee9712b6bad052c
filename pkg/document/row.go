package document

// Row is the parsed form of one input line: an ordered list of cells.
// A Row is immutable once built; rows in a document may differ in width.
type Row struct {
	cells []Cell
}

// NewRow builds a row from the given cells. The slice is copied.
func NewRow(cells ...Cell) Row {
	if len(cells) == 0 {
		return Row{}
	}
	return Row{cells: append([]Cell(nil), cells...)}
}

// PlainRow builds a row of unstyled cells.
func PlainRow(texts ...string) Row {
	cells := make([]Cell, len(texts))
	for i, t := range texts {
		cells[i] = Plain(t)
	}
	return Row{cells: cells}
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r.cells)
}

// Cell returns the cell at index i, or the empty cell when the row is
// narrower than i+1. Narrow rows are padded on read, never in storage.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.cells) {
		return Cell{}
	}
	return r.cells[i]
}

// Cells returns a copy of the row's cells.
func (r Row) Cells() []Cell {
	return append([]Cell(nil), r.cells...)
}

// Texts returns the text of every cell, in order.
func (r Row) Texts() []string {
	texts := make([]string, len(r.cells))
	for i, c := range r.cells {
		texts[i] = c.Text
	}
	return texts
}

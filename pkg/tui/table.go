package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/docker/logview/pkg/document"
)

const columnSeparator = " │ "

func (m *Model) renderTable() string {
	height := m.bodyHeight()
	lines := make([]string, 0, height)

	switch {
	case height == 0:
		return ""
	case m.total == 0 || len(m.widths) == 0:
		msg := "Waiting for input…"
		if m.closed {
			msg = "No rows"
		}
		lines = append(lines, m.styles.Placeholder.Render(msg))
	default:
		// Rows may have arrived since the last refresh; the snapshot only
		// covers what exists now and the widths cover the columns known
		// at the last refresh.
		snap := m.src.Document().Snapshot(m.offset, m.offset+height)
		for _, row := range snap.Rows {
			lines = append(lines, m.renderRow(row))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderRow draws the visible columns of row, padding missing cells.
func (m *Model) renderRow(row document.Row) string {
	sepWidth := lipgloss.Width(columnSeparator)
	sep := m.styles.Separator.Render(columnSeparator)

	var b strings.Builder
	x := 0
	for i := m.colOffset; i < len(m.widths) && x < m.width; i++ {
		if i > m.colOffset {
			if x+sepWidth >= m.width {
				break
			}
			b.WriteString(sep)
			x += sepWidth
		}

		width := min(m.widths[i], m.width-x)
		cell := row.Cell(i)
		b.WriteString(m.styles.Cell(cell.Style).Render(fitCell(cell.Display(), width)))
		x += width
	}
	return b.String()
}

// fitCell truncates or pads display text to exactly width terminal columns.
func fitCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(text)
	if w > width {
		text = ansi.Truncate(text, width, "…")
		w = ansi.StringWidth(text)
	}
	return text + strings.Repeat(" ", max(0, width-w))
}

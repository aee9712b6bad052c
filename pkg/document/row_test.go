package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_CellPadsOnRead(t *testing.T) {
	t.Parallel()

	row := NewRow(Styled("ERROR", StyleError), Plain("disk full"))

	assert.Equal(t, 2, row.Len())
	assert.Equal(t, Cell{Text: "ERROR", Style: StyleError}, row.Cell(0))
	assert.Equal(t, Cell{}, row.Cell(2))
	assert.Equal(t, Cell{}, row.Cell(-1))
	assert.Equal(t, 2, row.Len(), "reading past the end must not pad storage")
}

func TestRow_IsImmutable(t *testing.T) {
	t.Parallel()

	cells := []Cell{Plain("a"), Plain("b")}
	row := NewRow(cells...)
	cells[0] = Plain("changed")
	assert.Equal(t, "a", row.Cell(0).Text)

	out := row.Cells()
	out[1] = Plain("changed")
	assert.Equal(t, "b", row.Cell(1).Text)
}

func TestCell_Len(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"日本語", 3},
		{"é", 1},
		{"👍🏽", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Plain(tt.text).Len(), "%q", tt.text)
	}
}

func TestCell_Width(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"日本語", 6},
		{"👍🏽", 2},
		{"a\tb", 3},
		{"\x1b[0m", 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Plain(tt.text).Width(), "%q", tt.text)
	}
}

func TestCell_Display(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"plain", "plain"},
		{"日本語", "日本語"},
		{"a\tb\r\nc", "a b  c"},
		{"\x1b[31mred", "^[[31mred"},
		{"bell\a", "bell^G"},
		{"back\bspace", "back^Hspace"},
		{"nul\x00", "nul^@"},
		{"del\x7f", "del^?"},
		{"c1\u0085x", "c1 x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Plain(tt.text).Display(), "%q", tt.text)
	}
}

func TestStyle_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", StyleNone.String())
	assert.Equal(t, "error", StyleError.String())
	assert.Equal(t, "message", StyleMessage.String())
	assert.Equal(t, "invalid", Style(99).String())
}

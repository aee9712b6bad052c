package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/logview/pkg/document"
)

func TestRaw(t *testing.T) {
	t.Parallel()

	row, ok := Raw.Parse("  keep   everything\tas is ")
	require.True(t, ok)
	assert.Equal(t, []string{"  keep   everything\tas is "}, row.Texts())
}

func TestSpaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{"a bb ccc", []string{"a", "bb", "ccc"}},
		{"  leading and   trailing  ", []string{"leading", "and", "trailing"}},
		{"tabs\tcount\t\ttoo", []string{"tabs", "count", "too"}},
		{"single", []string{"single"}},
	}

	for _, tt := range tests {
		row, ok := Spaces.Parse(tt.line)
		require.True(t, ok, tt.line)
		assert.Equal(t, tt.want, row.Texts(), tt.line)
	}
}

func TestSpaces_DocumentWidths(t *testing.T) {
	t.Parallel()

	row, ok := Spaces.Parse("a bb ccc")
	require.True(t, ok)

	d := document.New()
	d.Append(row)
	assert.Equal(t, []int{1, 2, 3}, d.ColumnWidths())
}

func TestTSV(t *testing.T) {
	t.Parallel()

	row, ok := TSV.Parse("a\t\tb c\t")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "", "b c", ""}, row.Texts())
}

func TestCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty field kept", "1,2,,4", []string{"1", "2", "", "4"}},
		{"fields trimmed", " a ,  b,c  ", []string{"a", "b", "c"}},
		{"quoted comma", `x,"hello, world",y`, []string{"x", "hello, world", "y"}},
		{"escaped quote", `"say ""hi""",ok`, []string{`say "hi"`, "ok"}},
		{"quoted whitespace trimmed", `" padded ",b`, []string{"padded", "b"}},
		{"hash inside a field", "a,#b", []string{"a", "#b"}},
		{"lazy bare quote", `a"b,c`, []string{`a"b`, "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			row, ok := CSV.Parse(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, row.Texts())
		})
	}
}

func TestCSV_Rejects(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		",,,",
		" , ,  ",
		"# a comment",
		"   # indented comment",
		`"",""`,
	} {
		_, ok := CSV.Parse(line)
		assert.False(t, ok, "%q should be rejected", line)
	}
}

func TestLevelMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		level document.Cell
		msg   string
	}{
		{"ERROR: disk full", document.Styled("ERROR", document.StyleError), "disk full"},
		{"err:short", document.Styled("err", document.StyleError), "short"},
		{"Warning: low memory", document.Styled("Warning", document.StyleWarning), "low memory"},
		{"warn: x", document.Styled("warn", document.StyleWarning), "x"},
		{"INFO: started", document.Styled("INFO", document.StyleInfo), "started"},
		{"dbg: value=1", document.Styled("dbg", document.StyleDebug), "value=1"},
		{"DEBUG: a", document.Styled("DEBUG", document.StyleDebug), "a"},
		{"trace: deep", document.Styled("trace", document.StyleTrace), "deep"},
		{"no-colon-here", document.Plain(""), "no-colon-here"},
		{"custom: thing", document.Plain("custom"), "thing"},
		{"time: 12:30:00", document.Plain("time"), "12:30:00"},
		{" ERROR: padded level", document.Plain(" ERROR"), "padded level"},
		{"ERROR:", document.Styled("ERROR", document.StyleError), ""},
	}

	for _, tt := range tests {
		row, ok := LevelMessage.Parse(tt.line)
		require.True(t, ok, tt.line)
		require.Equal(t, 2, row.Len(), tt.line)
		assert.Equal(t, tt.level, row.Cell(0), tt.line)
		assert.Equal(t, document.Plain(tt.msg), row.Cell(1), tt.line)
	}
}

func TestUnknownKindRejects(t *testing.T) {
	t.Parallel()

	_, ok := Kind(42).Parse("anything")
	assert.False(t, ok)
}

func FuzzParsersNeverPanic(f *testing.F) {
	for _, seed := range []string{
		"",
		"a bb ccc",
		"ERROR: disk full",
		"1,2,,4",
		`"unterminated,`,
		`{"__REALTIME_TIMESTAMP":"1","MESSAGE":[255,0]}`,
		`{"MESSAGE":`,
		"\xff\xfe",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, line string) {
		for _, info := range All() {
			row, ok := info.Kind.Parse(line)
			if !ok {
				assert.Equal(t, 0, row.Len())
			}
		}
	})
}

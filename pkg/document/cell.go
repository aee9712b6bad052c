package document

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Style is a semantic presentation tag attached to a cell.
// The renderer decides what each style looks like.
type Style int

const (
	StyleNone Style = iota
	StyleError
	StyleWarning
	StyleInfo
	StyleDebug
	StyleTrace
	StyleUnknown
	StyleUnit
	StyleIdentifier
	StyleProcess
	StyleMessage
)

var styleNames = [...]string{
	StyleNone:       "none",
	StyleError:      "error",
	StyleWarning:    "warning",
	StyleInfo:       "info",
	StyleDebug:      "debug",
	StyleTrace:      "trace",
	StyleUnknown:    "unknown",
	StyleUnit:       "unit",
	StyleIdentifier: "identifier",
	StyleProcess:    "process",
	StyleMessage:    "message",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "invalid"
	}
	return styleNames[s]
}

// Cell is a single styled text value.
type Cell struct {
	Text  string
	Style Style
}

// Plain returns an unstyled cell.
func Plain(text string) Cell {
	return Cell{Text: text}
}

// Styled returns a cell carrying the given style.
func Styled(text string, style Style) Cell {
	return Cell{Text: text, Style: style}
}

// Len returns the character length of the cell text, counted in
// user-perceived characters (grapheme clusters).
func (c Cell) Len() int {
	return charLen(c.Text)
}

// Width returns how many terminal columns Display takes. Wide characters
// such as CJK and most emoji count twice.
func (c Cell) Width() int {
	return displayWidth(c.Display())
}

// Display returns the text made safe for a terminal: tabs and line breaks
// become spaces, other control characters use caret notation (^[ for ESC)
// or become spaces outside the C0 range.
func (c Cell) Display() string {
	if strings.IndexFunc(c.Text, unicode.IsControl) < 0 {
		return c.Text
	}

	var b strings.Builder
	b.Grow(len(c.Text) + 8)
	for _, r := range c.Text {
		switch {
		case !unicode.IsControl(r):
			b.WriteRune(r)
		case r == '\t' || r == '\n' || r == '\r' || r > 0x7f:
			b.WriteByte(' ')
		default:
			b.WriteByte('^')
			b.WriteByte(byte(r) ^ 0x40)
		}
	}
	return b.String()
}

func charLen(s string) int {
	// Fast path: pure ASCII
	for i := range len(s) {
		if s[i] >= 0x80 {
			return uniseg.GraphemeClusterCount(s)
		}
	}
	return len(s)
}

func displayWidth(s string) int {
	for i := range len(s) {
		if s[i] >= 0x80 {
			return uniseg.StringWidth(s)
		}
	}
	return len(s)
}

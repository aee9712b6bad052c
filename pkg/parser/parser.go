// Package parser turns one line of text into a document.Row.
//
// The set of parsers is closed: a Kind names one of the built-in variants and
// Kind.Parse dispatches to it. Parsers never fail loudly. A line they cannot
// handle is reported as rejected and the caller skips it.
package parser

import "github.com/docker/logview/pkg/document"

// Kind identifies one of the built-in line parsers.
type Kind int

const (
	// Raw keeps the whole line as a single cell.
	Raw Kind = iota
	// Spaces splits on runs of whitespace.
	Spaces
	// TSV splits on every tab character.
	TSV
	// CSV reads the line as one or more comma-separated records.
	CSV
	// LevelMessage reads "LEVEL: message" lines.
	LevelMessage
	// JournalJSON reads journalctl's JSON output, one object per line.
	JournalJSON
)

// Parse parses line with the selected parser. The boolean is false when the
// line was rejected and must be skipped.
func (k Kind) Parse(line string) (document.Row, bool) {
	switch k {
	case Raw:
		return parseRaw(line)
	case Spaces:
		return parseSpaces(line)
	case TSV:
		return parseTSV(line)
	case CSV:
		return parseCSV(line)
	case LevelMessage:
		return parseLevelMessage(line)
	case JournalJSON:
		return parseJournalJSON(line)
	default:
		return document.Row{}, false
	}
}

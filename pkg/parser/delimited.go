package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/docker/logview/pkg/document"
)

func parseRaw(line string) (document.Row, bool) {
	return document.PlainRow(line), true
}

func parseSpaces(line string) (document.Row, bool) {
	return document.PlainRow(strings.Fields(line)...), true
}

func parseTSV(line string) (document.Row, bool) {
	return document.PlainRow(strings.Split(line, "\t")...), true
}

// parseCSV reads every record on the line. Fields are trimmed; a line that
// yields no fields, or only empty ones, is rejected.
func parseCSV(line string) (document.Row, bool) {
	// A comment marker preceded by whitespace still starts a comment.
	r := csv.NewReader(strings.NewReader(strings.TrimLeft(line, " \t")))
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	var fields []string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Debug("Rejecting malformed CSV line", "line", line, "error", err)
			return document.Row{}, false
		}
		for _, field := range record {
			fields = append(fields, strings.TrimSpace(field))
		}
	}

	empty := true
	for _, f := range fields {
		if f != "" {
			empty = false
			break
		}
	}
	if empty {
		return document.Row{}, false
	}

	return document.PlainRow(fields...), true
}

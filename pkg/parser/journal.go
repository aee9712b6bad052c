package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/docker/logview/pkg/document"
)

const journalTimeLayout = "2006-01-02 15:04:05"

// journalEntry is the subset of a journalctl JSON record that is displayed.
type journalEntry struct {
	Timestamp  journalValue `json:"__REALTIME_TIMESTAMP"`
	Unit       journalValue `json:"_SYSTEMD_UNIT"`
	PID        journalValue `json:"_PID"`
	Identifier journalValue `json:"SYSLOG_IDENTIFIER"`
	Priority   journalValue `json:"PRIORITY"`
	Message    journalValue `json:"MESSAGE"`
}

// journalValue holds a field as text. journalctl encodes numbers as strings
// and non-UTF-8 payloads as arrays of bytes; plain JSON numbers are accepted
// too.
type journalValue struct {
	text string
	set  bool
}

func (v *journalValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = journalValue{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = journalValue{text: s, set: true}
	case data[0] == '[':
		var raw []int
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		buf := make([]byte, len(raw))
		for i, b := range raw {
			if b < 0 || b > 255 {
				return fmt.Errorf("byte %d out of range: %d", i, b)
			}
			buf[i] = byte(b)
		}
		*v = journalValue{text: string(buf), set: true}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = journalValue{text: n.String(), set: true}
	}
	return nil
}

var errMissingField = errors.New("missing required field")

func (v journalValue) int(bitSize int) (int64, error) {
	if !v.set {
		return 0, errMissingField
	}
	return strconv.ParseInt(v.text, 10, bitSize)
}

type severity struct {
	label string
	style document.Style
}

var journalSeverities = [...]severity{
	0: {"EMERG", document.StyleError},
	1: {"ALERT", document.StyleError},
	2: {"CRIT", document.StyleError},
	3: {"ERR", document.StyleError},
	4: {"WARNING", document.StyleWarning},
	5: {"NOTICE", document.StyleInfo},
	6: {"INFO", document.StyleInfo},
	7: {"DEBUG", document.StyleDebug},
}

var unknownSeverity = severity{"UNKNOWN", document.StyleUnknown}

func journalSeverity(priority int64, known bool) severity {
	if !known || priority < 0 || priority >= int64(len(journalSeverities)) {
		return unknownSeverity
	}
	return journalSeverities[priority]
}

// parseJournalJSON reads one journalctl JSON object. The row always has six
// cells: timestamp, severity, unit, identifier, pid and message.
func parseJournalJSON(line string) (document.Row, bool) {
	var entry journalEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		slog.Warn("Failed to parse JSON line", "line", line, "error", err)
		return document.Row{}, false
	}
	if !entry.Message.set {
		slog.Warn("Journal entry has no message", "line", line)
		return document.Row{}, false
	}

	micros, err := entry.Timestamp.int(64)
	if err != nil {
		slog.Warn("Rejecting journal entry with invalid timestamp", "line", line, "error", err)
		return document.Row{}, false
	}
	timestamp, ok := formatJournalTime(micros)
	if !ok {
		slog.Warn("Rejecting journal entry with out of range timestamp", "timestamp", micros)
		return document.Row{}, false
	}

	var pid string
	if entry.PID.set {
		n, err := entry.PID.int(32)
		if err != nil {
			slog.Warn("Rejecting journal entry with invalid pid", "line", line, "error", err)
			return document.Row{}, false
		}
		pid = strconv.FormatInt(n, 10)
	}

	var priority int64
	if entry.Priority.set {
		priority, err = entry.Priority.int(32)
		if err != nil {
			slog.Warn("Rejecting journal entry with invalid priority", "line", line, "error", err)
			return document.Row{}, false
		}
	}
	sev := journalSeverity(priority, entry.Priority.set)

	return document.NewRow(
		document.Plain(timestamp),
		document.Styled(sev.label, sev.style),
		document.Styled(entry.Unit.text, document.StyleUnit),
		document.Styled(entry.Identifier.text, document.StyleIdentifier),
		document.Styled(pid, document.StyleProcess),
		document.Styled(entry.Message.text, document.StyleMessage),
	), true
}

// formatJournalTime converts microseconds since the epoch to UTC wall time at
// second resolution. Sub-second digits are dropped, not rounded.
func formatJournalTime(micros int64) (string, bool) {
	t := time.Unix(micros/1_000_000, 0).UTC()
	if t.Year() < 0 || t.Year() > 9999 {
		return "", false
	}
	return t.Format(journalTimeLayout), true
}

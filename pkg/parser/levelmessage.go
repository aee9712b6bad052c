package parser

import (
	"strings"

	"github.com/docker/logview/pkg/document"
)

// parseLevelMessage splits "LEVEL: message" at the first colon. Without a
// colon the level is empty and the whole line is the message. The row always
// has two cells.
func parseLevelMessage(line string) (document.Row, bool) {
	level, message, found := strings.Cut(line, ":")
	if found {
		message = strings.TrimSpace(message)
	} else {
		level, message = "", line
	}

	return document.NewRow(
		document.Styled(level, levelStyle(level)),
		document.Plain(message),
	), true
}

func levelStyle(level string) document.Style {
	switch strings.ToUpper(level) {
	case "ERROR", "ERR":
		return document.StyleError
	case "WARN", "WARNING":
		return document.StyleWarning
	case "INFO":
		return document.StyleInfo
	case "DEBUG", "DBG":
		return document.StyleDebug
	case "TRACE":
		return document.StyleTrace
	default:
		return document.StyleNone
	}
}

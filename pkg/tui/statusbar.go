package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/docker/go-units"
)

// renderTitle draws the title bar.
//
// Layout: [ logview TITLE                         parser NAME ]
func (m *Model) renderTitle() string {
	left := " logview"
	if m.opts.Title != "" {
		left += "  " + m.opts.Title
	}
	right := m.src.Parser().String() + " "

	return m.bar(m.styles.Title, m.styles.Title.Render(left), m.styles.Title.Render(right))
}

// renderStatus draws the status bar.
//
// Layout: [ ● streaming  rows  cols  bytes  position       help ]
func (m *Model) renderStatus() string {
	stats := m.src.Stats()

	var state string
	if m.closed {
		state = m.styles.StatusClosed.Render(" ○ closed")
	} else {
		state = m.styles.StatusLive.Render(" ● streaming")
	}

	info := fmt.Sprintf("  %d rows  %d cols  %s", m.total, len(m.widths), units.HumanSize(float64(stats.BytesRead)))
	if stats.Rejected > 0 {
		info += fmt.Sprintf("  %d rejected", stats.Rejected)
	}
	switch {
	case m.total == 0:
	case m.follow:
		info += "  following"
	default:
		info += fmt.Sprintf("  line %d/%d", m.offset+1, m.total)
	}
	left := state + m.styles.StatusBar.Render(info)

	leftW := lipgloss.Width(left)
	maxHelpW := m.width - leftW - 3

	var right string
	if maxHelpW > 0 {
		var parts []string
		for _, b := range m.keys.ShortHelp() {
			if b.Help().Key != "" && b.Help().Desc != "" {
				parts = append(parts,
					m.styles.Key.Render(b.Help().Key)+
						m.styles.StatusBar.Render(" ")+
						m.styles.KeyDesc.Render(b.Help().Desc))
			}
		}
		helpStr := strings.Join(parts, m.styles.StatusBar.Render("  "))
		if lipgloss.Width(helpStr) > maxHelpW {
			helpStr = ansi.Truncate(helpStr, maxHelpW, "...")
		}
		right = helpStr + m.styles.StatusBar.Render(" ")
	}

	return m.bar(m.styles.StatusBar, left, right)
}

// bar lays out a full-width line with left and right aligned parts, filling
// the gap with style.
func (m *Model) bar(style lipgloss.Style, left, right string) string {
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)

	if leftW+rightW >= m.width {
		return ansi.Truncate(left+right, m.width, "…")
	}
	gap := style.Render(strings.Repeat(" ", m.width-leftW-rightW))
	return left + gap + right
}

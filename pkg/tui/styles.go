package tui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/docker/logview/pkg/document"
)

// Theme selects the colour palette.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Themes lists the accepted theme names.
var Themes = []Theme{ThemeSystem, ThemeLight, ThemeDark}

// ParseTheme validates a theme name.
func ParseTheme(name string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(name)))
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (available: system, light, dark)", name)
	}
}

func (t Theme) String() string { return string(t) }

// Set implements pflag.Value.
func (t *Theme) Set(name string) error {
	parsed, err := ParseTheme(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements pflag.Value.
func (t *Theme) Type() string { return "theme" }

// Color hex values, light variant first.
const (
	colorTextLight = "#343B58"
	colorTextDark  = "#C0CAF5"

	colorMutedLight = "#8990B3"
	colorMutedDark  = "#565F89"

	colorAccentLight = "#2E7DE9"
	colorAccentDark  = "#7AA2F7"

	colorBarLight = "#E1E2E7"
	colorBarDark  = "#24283B"

	colorErrorLight = "#C0392B"
	colorErrorDark  = "#F7768E"

	colorWarningLight = "#8C6C3E"
	colorWarningDark  = "#E0AF68"

	colorInfoLight = "#33635C"
	colorInfoDark  = "#9ECE6A"

	colorDebugLight = "#166775"
	colorDebugDark  = "#7DCFFF"

	colorUnitLight = "#387068"
	colorUnitDark  = "#41A6B5"

	colorIdentifierLight = "#587539"
	colorIdentifierDark  = "#73DACA"
)

// Styles holds every style the viewer draws with.
type Styles struct {
	Title        lipgloss.Style
	StatusBar    lipgloss.Style
	StatusLive   lipgloss.Style
	StatusClosed lipgloss.Style
	Key          lipgloss.Style
	KeyDesc      lipgloss.Style
	Separator    lipgloss.Style
	Placeholder  lipgloss.Style

	cells map[document.Style]lipgloss.Style
}

func newStyles(isDark bool) Styles {
	ld := lipgloss.LightDark(isDark)
	c := func(light, dark string) color.Color {
		return ld(lipgloss.Color(light), lipgloss.Color(dark))
	}

	text := c(colorTextLight, colorTextDark)
	muted := c(colorMutedLight, colorMutedDark)
	accent := c(colorAccentLight, colorAccentDark)
	bar := c(colorBarLight, colorBarDark)
	info := c(colorInfoLight, colorInfoDark)
	debug := c(colorDebugLight, colorDebugDark)

	base := lipgloss.NewStyle().Foreground(text)

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(accent).Background(bar),
		StatusBar:    lipgloss.NewStyle().Foreground(text).Background(bar),
		StatusLive:   lipgloss.NewStyle().Bold(true).Foreground(info).Background(bar),
		StatusClosed: lipgloss.NewStyle().Foreground(muted).Background(bar),
		Key:          lipgloss.NewStyle().Bold(true).Foreground(text).Background(bar),
		KeyDesc:      lipgloss.NewStyle().Foreground(muted).Background(bar),
		Separator:    lipgloss.NewStyle().Foreground(muted),
		Placeholder:  lipgloss.NewStyle().Foreground(muted).Italic(true),

		cells: map[document.Style]lipgloss.Style{
			document.StyleNone:       base,
			document.StyleError:      lipgloss.NewStyle().Foreground(c(colorErrorLight, colorErrorDark)),
			document.StyleWarning:    lipgloss.NewStyle().Foreground(c(colorWarningLight, colorWarningDark)),
			document.StyleInfo:       lipgloss.NewStyle().Foreground(info),
			document.StyleDebug:      lipgloss.NewStyle().Foreground(debug),
			document.StyleTrace:      lipgloss.NewStyle().Foreground(muted),
			document.StyleUnknown:    lipgloss.NewStyle().Foreground(muted),
			document.StyleUnit:       lipgloss.NewStyle().Foreground(c(colorUnitLight, colorUnitDark)),
			document.StyleIdentifier: lipgloss.NewStyle().Foreground(c(colorIdentifierLight, colorIdentifierDark)),
			document.StyleProcess:    lipgloss.NewStyle().Foreground(debug),
			document.StyleMessage:    base.Faint(true),
		},
	}
}

// Cell returns the style used to draw a cell tagged with s.
func (s Styles) Cell(style document.Style) lipgloss.Style {
	if st, ok := s.cells[style]; ok {
		return st
	}
	return s.cells[document.StyleNone]
}

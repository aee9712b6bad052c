// Package tui is the interactive table viewer. It polls the document once
// per frame and never writes to it.
package tui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/logview/pkg/document"
	"github.com/docker/logview/pkg/ingest"
	"github.com/docker/logview/pkg/parser"
)

// DefaultFPS is the default number of frames drawn per second.
const DefaultFPS = 30

// chromeHeight is the number of lines used by the title and status bars.
const chromeHeight = 2

// Source is what the viewer reads from. *ingest.Pipeline implements it.
type Source interface {
	Document() *document.Document
	Live() *ingest.Live
	Stats() ingest.Stats
	Parser() parser.Kind
}

// Options configures the viewer.
type Options struct {
	// Title is shown in the title bar, usually the input file name.
	Title string
	Theme Theme
	// FPS is the polling rate. Zero means DefaultFPS.
	FPS int
	// MaxColumnWidth truncates wider columns. Zero means no limit.
	MaxColumnWidth int
}

type tickMsg time.Time

// Model is the bubbletea model of the viewer.
type Model struct {
	src    Source
	opts   Options
	keys   keyMap
	styles Styles
	frame  time.Duration

	width  int
	height int
	ready  bool

	// widths are the rendered column widths, recomputed once per frame.
	widths []int
	total  int
	closed bool

	offset    int
	colOffset int
	follow    bool
}

// New creates a viewer over src.
func New(src Source, opts Options) *Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Theme == "" {
		opts.Theme = ThemeSystem
	}

	return &Model{
		src:    src,
		opts:   opts,
		keys:   defaultKeyMap(),
		styles: newStyles(opts.Theme != ThemeLight),
		frame:  time.Second / time.Duration(opts.FPS),
		follow: true,
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts polling and, for the system theme, asks the terminal for its
// background colour.
func (m *Model) Init() tea.Cmd {
	if m.opts.Theme == ThemeSystem {
		return tea.Batch(m.tick(), tea.RequestBackgroundColor)
	}
	return m.tick()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refresh()
		return m, nil

	case tea.BackgroundColorMsg:
		if m.opts.Theme == ThemeSystem {
			m.styles = newStyles(msg.IsDark())
		}
		return m, nil

	case tickMsg:
		// Read the flag before the rows: once it reads closed, every row
		// is already in the document.
		open := m.src.Live().IsOpen()
		m.refresh()
		if !open {
			m.closed = true
			return m, nil
		}
		return m, m.tick()

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		switch msg.Button.String() {
		case "wheelup":
			m.scrollBy(-3)
		case "wheeldown":
			m.scrollBy(3)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-max(1, m.bodyHeight()))
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(max(1, m.bodyHeight()))
	case key.Matches(msg, m.keys.Top):
		m.follow = false
		m.offset = 0
	case key.Matches(msg, m.keys.Bottom):
		m.follow = true
		m.offset = m.maxOffset()
	case key.Matches(msg, m.keys.Left):
		m.colOffset = max(0, m.colOffset-1)
	case key.Matches(msg, m.keys.Right):
		m.colOffset = min(m.colOffset+1, max(0, len(m.widths)-1))
	}
	return m, nil
}

// scrollBy moves the view by delta rows. Scrolling up stops following the
// tail; reaching the bottom resumes it.
func (m *Model) scrollBy(delta int) {
	m.offset = max(0, min(m.offset+delta, m.maxOffset()))
	m.follow = m.offset >= m.maxOffset()
}

// refresh polls the document for its size and column widths.
func (m *Model) refresh() {
	doc := m.src.Document()
	m.widths = doc.RenderedColumnWidths(m.measure)
	m.total = doc.RowCount()

	if m.follow {
		m.offset = m.maxOffset()
	}
	m.offset = max(0, min(m.offset, m.maxOffset()))
	m.colOffset = max(0, min(m.colOffset, len(m.widths)-1))
}

// measure returns a column's display width, capped at the configured
// maximum and the screen width.
func (m *Model) measure(_, cols int) int {
	if m.opts.MaxColumnWidth > 0 {
		cols = min(cols, m.opts.MaxColumnWidth)
	}
	if m.width > 0 {
		cols = min(cols, m.width)
	}
	return cols
}

func (m *Model) bodyHeight() int {
	return max(0, m.height-chromeHeight)
}

func (m *Model) maxOffset() int {
	return max(0, m.total-m.bodyHeight())
}

// View renders the model.
func (m *Model) View() tea.View {
	view := tea.NewView(m.render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.WindowTitle = "logview " + m.opts.Title
	return view
}

func (m *Model) render() string {
	if !m.ready {
		return m.styles.Placeholder.Render("Loading…")
	}

	return strings.Join([]string{
		m.renderTitle(),
		m.renderTable(),
		m.renderStatus(),
	}, "\n")
}

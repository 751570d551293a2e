package ui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/vtail/internal/config"
	"github.com/TimelordUK/vtail/internal/format"
	"github.com/TimelordUK/vtail/internal/render"
	"github.com/TimelordUK/vtail/internal/source"
	"github.com/TimelordUK/vtail/internal/view"
	"github.com/TimelordUK/vtail/pkg/logformat"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	trimFactor    = 1.2
)

type tickMsg time.Time

// Model is the main application model. It owns the raw line buffer and
// drives the formatter, the line collection and the viewport.
type Model struct {
	cfg         *config.Config
	feed        source.LineFeed
	formatter   *format.Formatter
	lines       *source.Collection
	viewport    *view.Viewport
	keys        KeyMap
	help        help.Model
	searchInput textinput.Model
	timestamps  *logformat.TimestampParser
	styles      styles

	mode   Mode
	width  int
	height int

	// raw lines kept in memory, oldest first
	raw           []string
	formatted     int
	maxLines      int
	trimThreshold int
	interval      time.Duration

	needsRebuild bool
	lastWidth    int
	lastWrap     bool

	wrapLines  bool
	hideVendor bool
	following  bool

	searchTerm    string
	matchRow      int
	status        string
	lastTimestamp time.Time
	filename      string
}

type styles struct {
	dim        lipgloss.Style
	statusBar  lipgloss.Style
	hotkeyBar  lipgloss.Style
	statusNote lipgloss.Style
}

// NewModel creates a model over feed and primes it with the configured
// number of trailing lines.
func NewModel(feed source.LineFeed, cfg *config.Config) (*Model, error) {
	cfg.Normalize()

	st := newStyles(cfg.Theme)

	formatter := format.NewFormatter(defaultWidth)
	formatter.SetTabWidth(cfg.Display.TabWidth)
	formatter.SetStyles(format.Styles{Dim: st.dim})
	var highlighter render.Renderer = render.NewPlainRenderer()
	if cfg.Display.Colorize {
		highlighter = render.NewLogLevelRenderer(cfg)
	}
	formatter.SetHighlighter(highlighter)

	lines := source.NewCollection()
	lines.SetMarkerStyle(st.dim)

	viewport := view.NewViewport(defaultWidth, defaultHeight-2)
	viewport.SetProvider(lines)
	viewport.SetFillerStyle(st.dim)

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle()
	h.Styles.ShortDesc = lipgloss.NewStyle()
	h.Styles.ShortSeparator = lipgloss.NewStyle()
	h.Styles.Ellipsis = lipgloss.NewStyle()

	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	ti.Prompt = "/"

	m := &Model{
		cfg:           cfg,
		feed:          feed,
		formatter:     formatter,
		lines:         lines,
		viewport:      viewport,
		keys:          NewKeyMap(cfg.Keybindings),
		help:          h,
		searchInput:   ti,
		timestamps:    logformat.NewTimestampParser(),
		styles:        st,
		width:         defaultWidth,
		height:        defaultHeight,
		maxLines:      cfg.Tail.MaxLines,
		trimThreshold: int(float64(cfg.Tail.MaxLines) * trimFactor),
		interval:      cfg.FrameInterval(),
		needsRebuild:  true,
		wrapLines:     cfg.Display.WrapLines,
		hideVendor:    cfg.Display.HideVendor,
		following:     true,
		matchRow:      -1,
		filename:      filepath.Base(feed.Path()),
	}

	initial, err := feed.Tail(cfg.Tail.Lines)
	if err != nil {
		return nil, err
	}
	m.appendRaw(initial)
	m.processLines()
	m.keys.setState(m.hideVendor, m.wrapLines, m.following)
	return m, nil
}

func newStyles(theme config.ThemeConfig) styles {
	dim := lipgloss.NewStyle().Faint(true)
	if theme.Dim != "" {
		dim = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Dim))
	}
	return styles{
		dim: dim,
		statusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBar)).
			Foreground(lipgloss.Color(theme.StatusBarText)),
		hotkeyBar:  lipgloss.NewStyle().Reverse(true),
		statusNote: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SearchMatch)),
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.keys.setState(m.hideVendor, m.wrapLines, m.following)
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.poll()
		return m, tick(m.interval)
	}

	return m, nil
}

// resize applies the newest terminal geometry. Only the latest size matters,
// a changed width reformats everything.
func (m *Model) resize(width, height int) {
	m.width = max(width, 1)
	m.height = height
	m.help.Width = m.width
	m.searchInput.Width = max(m.width-3, 1)
	m.viewport.SetSize(m.width, m.contentHeight())
	m.processLines()
}

func (m *Model) contentHeight() int {
	return max(1, m.height-2)
}

func (m *Model) contentWidth() int {
	return m.width
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeSearch {
		return m.handleSearchKey(msg)
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.scrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.scrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.following = false
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
		m.following = m.viewport.AtBottom()
	case key.Matches(msg, m.keys.Top):
		m.following = false
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.following = true
		m.viewport.GotoBottom()

	case key.Matches(msg, m.keys.ToggleVendor):
		m.toggleVendor()
	case key.Matches(msg, m.keys.ToggleWrap):
		m.toggleWrap()
	case key.Matches(msg, m.keys.ToggleFollow):
		m.toggleFollow()
	case key.Matches(msg, m.keys.Truncate):
		m.truncateFile()

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NextMatch):
		m.findNext(m.searchAnchor()+1, 1)
	case key.Matches(msg, m.keys.PrevMatch):
		m.findNext(m.searchAnchor()-1, -1)
	}

	return m, nil
}

func (m *Model) scrollUp(n int) {
	m.following = false
	m.viewport.ScrollUp(n)
}

func (m *Model) scrollDown(n int) {
	m.viewport.ScrollDown(n)
	if m.viewport.AtBottom() {
		m.following = true
	}
}

func (m *Model) toggleFollow() {
	m.following = !m.following
	if m.following {
		m.viewport.GotoBottom()
	}
}

// toggleVendor flips vendor visibility, keeping the same content at the top
// of the screen.
func (m *Model) toggleVendor() {
	was := m.hideVendor
	m.hideVendor = !m.hideVendor
	offset := m.lines.ScrollForVendorToggle(was, m.hideVendor, m.viewport.Offset())
	m.processLines()
	if !m.following {
		m.viewport.SetOffset(offset)
	}
}

// toggleWrap flips wrapping. The offset is mapped using the rows as they are
// now, before the reformat at the new setting.
func (m *Model) toggleWrap() {
	was := m.wrapLines
	m.wrapLines = !m.wrapLines
	offset := m.lines.ScrollForWrapToggle(was, m.wrapLines, m.viewport.Offset())
	m.processLines()
	if !m.following {
		m.viewport.SetOffset(offset)
	}
}

// Close cleans up resources
func (m *Model) Close() error {
	if m.feed != nil {
		return m.feed.Close()
	}
	return nil
}

package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/vtail/internal/config"
	"github.com/TimelordUK/vtail/pkg/logformat"
)

// Renderer colours a single log line without changing its visible text
type Renderer interface {
	Render(line string) string
}

// trailing JSON context and extra arrays, as Monolog appends them
var contextSuffix = regexp.MustCompile(`^(.*?)( [\[{].*[\]}])$`)

// LogLevelRenderer colours the message by level and highlights any
// trailing JSON context
type LogLevelRenderer struct {
	detector *logformat.LevelDetector
	styles   map[logformat.Level]lipgloss.Style
	context  *SyntaxRenderer
}

// NewLogLevelRenderer creates a renderer with config
func NewLogLevelRenderer(cfg *config.Config) *LogLevelRenderer {
	levels := cfg.Theme.Levels
	r := &LogLevelRenderer{
		detector: logformat.NewLevelDetector(&cfg.LogLevels),
		styles: map[logformat.Level]lipgloss.Style{
			logformat.LevelUnknown: lipgloss.NewStyle(),
			logformat.LevelTrace:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Trace)),
			logformat.LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Debug)),
			logformat.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Info)),
			logformat.LevelWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Warn)),
			logformat.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Error)),
			logformat.LevelFatal:   lipgloss.NewStyle().Foreground(lipgloss.Color(levels.Fatal)),
		},
	}
	if cfg.Display.HighlightContext {
		r.context = NewSyntaxRenderer("json", cfg.Theme.ContextStyle)
	}
	return r
}

// Level returns the detected level of a line
func (r *LogLevelRenderer) Level(line string) logformat.Level {
	return r.detector.Detect(line)
}

// Render applies level colour and context highlighting. Lines that already
// carry escape sequences are returned untouched.
func (r *LogLevelRenderer) Render(line string) string {
	if line == "" || strings.Contains(line, "\x1b") {
		return line
	}

	style := r.styles[r.detector.Detect(line)]
	if r.context == nil {
		return style.Render(line)
	}

	m := contextSuffix.FindStringSubmatch(line)
	if m == nil {
		return style.Render(line)
	}
	return style.Render(m[1]) + r.context.Render(m[2])
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns the line as-is
func (r *PlainRenderer) Render(line string) string {
	return line
}

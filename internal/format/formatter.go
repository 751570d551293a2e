// Package format turns raw log lines into display rows. It recognises
// exception headers, framed stack traces and runs of vendor frames, and keeps
// enough parse state between lines to group consecutive vendor frames.
package format

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/vtail/internal/box"
	"github.com/TimelordUK/vtail/internal/render"
	"github.com/TimelordUK/vtail/internal/source"
)

const defaultTabWidth = 4

var (
	singleDigitOrdinal = regexp.MustCompile(`^(\x1b\[0m)?#(\d)(\D|$)`)
	frameParts         = regexp.MustCompile(`^(\x1b\[0m)?(#\d+)(.*?)(:.*)?$`)
)

// ParseState is the state carried from one line to the next
type ParseState struct {
	GroupID       int  // last vendor group id handed out
	InVendorGroup bool // the previous frame was a vendor frame
	InStackTrace  bool // between a trace header and its footer
}

// Formatter classifies and wraps raw lines for a given content width
type Formatter struct {
	contentWidth int
	wrapLines    bool
	tabWidth     int
	styles       Styles
	highlight    render.Renderer
	state        ParseState
}

// NewFormatter creates a formatter with wrapping enabled
func NewFormatter(contentWidth int) *Formatter {
	return &Formatter{
		contentWidth: contentWidth,
		wrapLines:    true,
		tabWidth:     defaultTabWidth,
		styles:       DefaultStyles(),
		highlight:    render.NewPlainRenderer(),
	}
}

// SetContentWidth sets the width rows are rendered at
func (f *Formatter) SetContentWidth(width int) { f.contentWidth = width }

// ContentWidth returns the current content width
func (f *Formatter) ContentWidth() int { return f.contentWidth }

// SetWrapLines enables or disables wrapping
func (f *Formatter) SetWrapLines(wrap bool) { f.wrapLines = wrap }

// WrapLines reports whether wrapping is enabled
func (f *Formatter) WrapLines() bool { return f.wrapLines }

// SetTabWidth sets how many spaces a tab expands to
func (f *Formatter) SetTabWidth(width int) {
	if width < 0 {
		width = defaultTabWidth
	}
	f.tabWidth = width
}

// SetStyles replaces the border styles
func (f *Formatter) SetStyles(styles Styles) { f.styles = styles }

// SetHighlighter sets the renderer applied to plain lines and exception
// messages. It must not change the visible text.
func (f *Formatter) SetHighlighter(r render.Renderer) {
	if r == nil {
		r = render.NewPlainRenderer()
	}
	f.highlight = r
}

// State returns the current parse state
func (f *Formatter) State() ParseState { return f.state }

// Reset forgets all parse state, used for a fresh or truncated file
func (f *Formatter) Reset() { f.state = ParseState{} }

// FormatLines resets the parse state and formats every raw line into a new
// collection at the formatter's content width.
func (f *Formatter) FormatLines(raw []string) *source.Collection {
	f.Reset()
	c := source.NewCollection()
	c.SetContentWidth(f.contentWidth)
	for i, r := range raw {
		if line := f.FormatLine(r, i); line != nil {
			c.AddLine(line)
		}
	}
	return c
}

// FormatNewLines formats raw[start:] without touching the parse state first
func (f *Formatter) FormatNewLines(raw []string, start int) []*source.Line {
	if start < 0 {
		start = 0
	}
	var lines []*source.Line
	for i := start; i < len(raw); i++ {
		if line := f.FormatLine(raw[i], i); line != nil {
			lines = append(lines, line)
		}
	}
	return lines
}

// FormatLine classifies one raw line, advances the parse state and returns
// its rendered Line.
func (f *Formatter) FormatLine(raw string, index int) *source.Line {
	text := expandTabs(raw, f.tabWidth)
	plain := ansi.Strip(text)
	traceWidth := f.contentWidth - box.Overhead

	switch Classify(text, plain, f.state) {
	case KindFooter:
		f.endVendorGroup()
		f.state.InStackTrace = false
		return source.NewLine(source.LineSpec{
			Content:        raw,
			FormattedLines: []string{box.Footer(f.contentWidth, f.styles.Dim)},
			OriginalIndex:  index,
		})

	case KindExceptionHeader:
		f.endVendorGroup()
		rows, full := f.formatException(text)
		return source.NewLine(source.LineSpec{
			Content:        raw,
			FormattedLines: rows,
			OriginalIndex:  index,
			FullWrapCount:  full,
		})

	case KindTraceHeader:
		f.endVendorGroup()
		f.state.InStackTrace = true
		return source.NewLine(source.LineSpec{
			Content:        raw,
			FormattedLines: []string{box.Header(f.contentWidth, f.styles.Dim)},
			OriginalIndex:  index,
			IsStackFrame:   true,
		})

	case KindFrame:
		return f.formatFrame(raw, text, index, traceWidth)

	case KindContinuation:
		groupID := 0
		if f.state.InVendorGroup {
			groupID = f.state.GroupID
		}
		rows, full := f.Wrap(text, traceWidth, 4)
		return source.NewLine(source.LineSpec{
			Content:        raw,
			FormattedLines: f.border(rows),
			OriginalIndex:  index,
			FullWrapCount:  full,
			IsStackFrame:   true,
			IsVendorFrame:  f.state.InVendorGroup,
			VendorGroupID:  groupID,
		})
	}

	f.endVendorGroup()
	rows, full := f.Wrap(f.highlighted(text), f.contentWidth, 0)
	return source.NewLine(source.LineSpec{
		Content:        raw,
		FormattedLines: rows,
		OriginalIndex:  index,
		FullWrapCount:  full,
	})
}

func (f *Formatter) formatFrame(raw, text string, index, traceWidth int) *source.Line {
	text = singleDigitOrdinal.ReplaceAllString(text, "${1}#0${2}${3}")

	vendor := IsVendorFrame(text)
	groupID := 0
	if vendor {
		if !f.state.InVendorGroup {
			f.state.GroupID++
			f.state.InVendorGroup = true
		}
		groupID = f.state.GroupID
	} else {
		f.endVendorGroup()
	}

	rows, full := f.Wrap(f.dimFrame(text), traceWidth, 4)
	return source.NewLine(source.LineSpec{
		Content:        raw,
		FormattedLines: f.border(rows),
		OriginalIndex:  index,
		FullWrapCount:  full,
		IsStackFrame:   true,
		IsVendorFrame:  vendor,
		VendorGroupID:  groupID,
	})
}

// formatException wraps the log message at full width and the serialized
// exception one column narrower, indented by one space.
func (f *Formatter) formatException(text string) ([]string, int) {
	message, exception, _ := strings.Cut(text, exceptionMarker)

	msgRows, msgCount := f.Wrap(f.highlighted(message), f.contentWidth, 0)
	excRows, excCount := f.Wrap(exception, f.contentWidth-1, 0)

	rows := make([]string, 0, len(msgRows)+len(excRows))
	rows = append(rows, msgRows...)
	for _, r := range excRows {
		rows = append(rows, " "+r)
	}
	return rows, msgCount + excCount
}

// dimFrame dims the ordinal and the ":call" suffix, leaving the path plain
func (f *Formatter) dimFrame(text string) string {
	m := frameParts.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	out := f.styles.Dim.Render(m[2]) + m[3]
	if m[4] != "" {
		out += f.styles.Dim.Render(m[4])
	}
	return out
}

func (f *Formatter) border(rows []string) []string {
	bordered := make([]string, len(rows))
	for i, r := range rows {
		bordered[i] = box.Row(r, f.contentWidth, f.styles.Dim)
	}
	return bordered
}

func (f *Formatter) highlighted(text string) string {
	return f.highlight.Render(text)
}

func (f *Formatter) endVendorGroup() {
	f.state.InVendorGroup = false
}

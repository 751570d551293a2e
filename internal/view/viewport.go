package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/vtail/internal/source"
)

// Viewport manages the visible window over pre-rendered rows.
// It knows nothing about log formats or file sources, only how to slice
// rows from a DisplayProvider.
type Viewport struct {
	provider source.DisplayProvider

	width  int
	height int

	scrollOffset int

	fillerStyle lipgloss.Style
}

// NewViewport creates a new viewport
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:       width,
		height:      height,
		fillerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// SetFillerStyle sets the style of the marker drawn below the last row
func (v *Viewport) SetFillerStyle(style lipgloss.Style) {
	v.fillerStyle = style
}

// SetProvider sets the row provider
func (v *Viewport) SetProvider(provider source.DisplayProvider) {
	v.provider = provider
	v.scrollOffset = 0
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// Height returns the number of visible rows
func (v *Viewport) Height() int { return v.height }

// Width returns the number of visible columns
func (v *Viewport) Width() int { return v.width }

// ScrollDown scrolls down by n rows
func (v *Viewport) ScrollDown(n int) {
	v.scrollOffset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n rows
func (v *Viewport) ScrollUp(n int) {
	v.scrollOffset -= n
	v.clampScroll()
}

// PageDown scrolls down by one page
func (v *Viewport) PageDown() {
	v.ScrollDown(max(v.height-1, 1))
}

// PageUp scrolls up by one page
func (v *Viewport) PageUp() {
	v.ScrollUp(max(v.height-1, 1))
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.scrollOffset = 0
}

// GotoBottom scrolls so the last row is on screen
func (v *Viewport) GotoBottom() {
	v.scrollOffset = v.MaxOffset()
}

// SetOffset moves the top row to offset, clamped to the content
func (v *Viewport) SetOffset(offset int) {
	v.scrollOffset = offset
	v.clampScroll()
}

// Offset returns the index of the top visible row
func (v *Viewport) Offset() int {
	return v.scrollOffset
}

// MaxOffset returns the largest valid offset
func (v *Viewport) MaxOffset() int {
	if v.provider == nil {
		return 0
	}
	return max(v.provider.DisplayLineCount()-v.height, 0)
}

// AtBottom reports whether the last row is visible
func (v *Viewport) AtBottom() bool {
	return v.scrollOffset >= v.MaxOffset()
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	if v.provider == nil {
		v.scrollOffset = 0
		return
	}
	v.scrollOffset = min(max(v.scrollOffset, 0), v.MaxOffset())
}

// Render returns exactly height rows. Rows wider than the viewport are cut,
// which only happens if the provider was rendered at a different width.
func (v *Viewport) Render() string {
	if v.height <= 0 {
		return ""
	}

	var rows []string
	if v.provider != nil {
		rows = v.provider.DisplayLines(v.scrollOffset, v.height)
	}

	var builder strings.Builder
	for i := 0; i < v.height; i++ {
		if i > 0 {
			builder.WriteString("\n")
		}
		if i >= len(rows) {
			builder.WriteString(v.fillerStyle.Render("~"))
			continue
		}
		row := rows[i]
		if v.width > 0 && ansi.StringWidth(row) > v.width {
			row = ansi.Truncate(row, v.width, "")
		}
		builder.WriteString(row)
	}
	return builder.String()
}

// PercentScrolled returns how far through the content the view is
func (v *Viewport) PercentScrolled() float64 {
	if v.provider == nil || v.provider.DisplayLineCount() == 0 {
		return 0
	}
	maxOffset := v.MaxOffset()
	if maxOffset == 0 {
		return 100
	}
	return float64(v.scrollOffset) / float64(maxOffset) * 100
}

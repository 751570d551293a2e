package source

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/vtail/internal/box"
)

const markerSample = "#…"

// Collection holds formatted Lines in stream order and lazily flattens them
// into display rows. The cached rows are rebuilt only after something that
// affects them changed.
type Collection struct {
	lines        []*Line
	display      []string
	dirty        bool
	rebuilds     int
	hideVendor   bool
	contentWidth int
	markerStyle  lipgloss.Style
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{
		display:     []string{},
		markerStyle: lipgloss.NewStyle().Faint(true),
	}
}

// SetMarkerStyle sets the style of collapsed vendor markers. A style that
// renders a marker identically leaves the cache alone.
func (c *Collection) SetMarkerStyle(style lipgloss.Style) {
	same := c.markerStyle.Render(markerSample) == style.Render(markerSample)
	c.markerStyle = style
	if !same {
		c.dirty = true
	}
}

// AddLine appends a single line
func (c *Collection) AddLine(line *Line) {
	c.lines = append(c.lines, line)
	c.dirty = true
}

// AppendLines appends a batch of lines
func (c *Collection) AppendLines(lines []*Line) {
	if len(lines) == 0 {
		return
	}
	c.lines = append(c.lines, lines...)
	c.dirty = true
}

// SetLines replaces every line
func (c *Collection) SetLines(lines []*Line) {
	c.lines = append([]*Line(nil), lines...)
	c.dirty = true
}

// Clear empties the collection and its cache
func (c *Collection) Clear() {
	c.lines = nil
	c.display = []string{}
	c.dirty = false
}

// TrimFromStart drops the oldest count lines and returns how many display
// rows they occupied, so callers can shift a scroll offset.
func (c *Collection) TrimFromStart(count int) int {
	if count <= 0 || len(c.lines) == 0 {
		return 0
	}
	if count > len(c.lines) {
		count = len(c.lines)
	}

	removed := 0
	for _, line := range c.lines[:count] {
		removed += line.WrapCount()
	}
	c.lines = append([]*Line(nil), c.lines[count:]...)
	c.dirty = true
	return removed
}

// SetHideVendor collapses or expands vendor groups
func (c *Collection) SetHideVendor(hide bool) {
	if c.hideVendor == hide {
		return
	}
	c.hideVendor = hide
	c.dirty = true
}

// HideVendor reports whether vendor groups are collapsed
func (c *Collection) HideVendor() bool { return c.hideVendor }

// SetContentWidth sets the width collapsed markers are drawn at
func (c *Collection) SetContentWidth(width int) {
	if c.contentWidth == width {
		return
	}
	c.contentWidth = width
	c.dirty = true
}

// ContentWidth returns the marker width
func (c *Collection) ContentWidth() int { return c.contentWidth }

// Lines returns the formatted lines
func (c *Collection) Lines() []*Line { return c.lines }

// Len returns the number of lines
func (c *Collection) Len() int { return len(c.lines) }

// DisplayLineCount returns the number of rows in the projection
func (c *Collection) DisplayLineCount() int {
	c.processIfDirty()
	return len(c.display)
}

// DisplayLines returns up to count rows starting at start
func (c *Collection) DisplayLines(start, count int) []string {
	c.processIfDirty()
	if start < 0 {
		start = 0
	}
	if start >= len(c.display) || count <= 0 {
		return []string{}
	}
	end := start + count
	if end > len(c.display) {
		end = len(c.display)
	}
	rows := make([]string, end-start)
	copy(rows, c.display[start:end])
	return rows
}

// AllDisplayLines returns every row in the projection
func (c *Collection) AllDisplayLines() []string {
	c.processIfDirty()
	rows := make([]string, len(c.display))
	copy(rows, c.display)
	return rows
}

func (c *Collection) processIfDirty() {
	if !c.dirty {
		return
	}
	c.display = c.buildDisplayLines()
	c.dirty = false
	c.rebuilds++
}

func (c *Collection) buildDisplayLines() []string {
	display := make([]string, 0, len(c.lines))
	if !c.hideVendor {
		for _, line := range c.lines {
			display = append(display, line.formattedLines...)
		}
		return display
	}

	members := c.groupMembers()
	seen := make(map[int]bool, len(members))
	for _, line := range c.lines {
		if !line.IsCollapsibleVendor() {
			display = append(display, line.formattedLines...)
			continue
		}
		if seen[line.vendorGroupID] {
			continue
		}
		seen[line.vendorGroupID] = true
		display = append(display, box.CollapsedMarker(members[line.vendorGroupID], c.contentWidth, c.markerStyle))
	}
	return display
}

// groupMembers counts the lines in each vendor group
func (c *Collection) groupMembers() map[int]int {
	counts := make(map[int]int)
	for _, line := range c.lines {
		if line.IsCollapsibleVendor() {
			counts[line.vendorGroupID]++
		}
	}
	return counts
}

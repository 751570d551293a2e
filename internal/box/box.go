// Package box draws the fixed-width borders that frame a stack trace.
//
// Every builder returns a string whose visible width is exactly the width it
// was given, so closing characters line up in one column.
package box

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overhead is the number of columns a bordered row spends on " │ " and " │".
const Overhead = 5

const (
	rowLeft    = " │ "
	rowRight   = " │"
	headerText = " ╭─Trace"
)

// Pad right-pads s with spaces to the given visible width. Wider input is
// truncated so the result never exceeds width.
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

// Header renders the top border of a trace box.
func Header(width int, dim lipgloss.Style) string {
	return dim.Render(headerText + repeat("─", width-ansi.StringWidth(headerText)-1) + "╮")
}

// Footer renders the bottom border of a trace box.
func Footer(width int, dim lipgloss.Style) string {
	return dim.Render(" ╰" + repeat("═", width-3) + "╯")
}

// Row borders one content row of a trace box.
func Row(content string, width int, dim lipgloss.Style) string {
	return dim.Render(rowLeft) + Pad(content, width-Overhead) + dim.Render(rowRight)
}

// CollapsedMarker renders the row that stands in for a hidden vendor group.
func CollapsedMarker(count, width int, dim lipgloss.Style) string {
	return Row(fmt.Sprintf("#… (%d vendor frames)", count), width, dim)
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

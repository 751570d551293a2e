package ui

import (
	"fmt"
	"strings"

	"github.com/TimelordUK/vtail/internal/box"
	"github.com/TimelordUK/vtail/pkg/logformat"
)

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	builder.WriteString(m.renderStatusBar())
	builder.WriteString("\n")
	builder.WriteString(m.viewport.Render())
	builder.WriteString("\n")
	builder.WriteString(m.renderHotkeyBar())

	return builder.String()
}

func (m *Model) renderStatusBar() string {
	if m.mode == ModeSearch {
		return box.Pad(m.searchInput.View(), m.width)
	}

	parts := []string{
		m.filename,
		fmt.Sprintf("Lines: %d", m.lines.DisplayLineCount()),
		choose(m.hideVendor, "VENDOR: hidden", "VENDOR: shown"),
		choose(m.wrapLines, "WRAP: on", "WRAP: off"),
	}
	if m.following {
		parts = append(parts, "FOLLOWING")
	} else {
		parts = append(parts, fmt.Sprintf("%.0f%%", m.viewport.PercentScrolled()))
	}
	if ts := logformat.FormatTime(m.lastTimestamp); ts != "" {
		parts = append(parts, ts)
	}

	status := " " + strings.Join(parts, " | ") + " "
	if m.status != "" {
		status += "| " + m.styles.statusNote.Render(m.status) + " "
	}
	return m.styles.statusBar.Render(box.Pad(status, m.width))
}

func (m *Model) renderHotkeyBar() string {
	bar := " " + m.help.ShortHelpView(m.keys.ShortHelp())
	return m.styles.hotkeyBar.Render(box.Pad(bar, m.width))
}

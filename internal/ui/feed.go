package ui

import (
	"log"
	"time"
)

// poll drains whatever the feed produced since the last tick
func (m *Model) poll() {
	lines, truncated, err := m.feed.Refresh()
	if err != nil {
		log.Printf("refresh %s: %v", m.feed.Path(), err)
		m.status = err.Error()
		return
	}

	if truncated {
		log.Printf("%s was truncated, starting over", m.feed.Path())
		m.resetState()
	}
	if len(lines) == 0 && !truncated {
		return
	}

	offset := m.viewport.Offset()
	removed := m.appendRaw(lines)
	m.processLines()
	if removed > 0 && !m.following {
		m.viewport.SetOffset(offset - removed)
	}
}

// appendRaw buffers new lines, skipping empty ones, and trims the buffer
// once it outgrows the threshold. It returns the display rows trimmed away.
func (m *Model) appendRaw(lines []string) int {
	for _, line := range lines {
		if line == "" {
			continue
		}
		m.raw = append(m.raw, line)
		if t, ok := m.timestamps.Parse(line); ok {
			m.lastTimestamp = t
		}
	}

	if len(m.raw) > m.trimThreshold {
		return m.trimOldLines()
	}
	return 0
}

// trimOldLines drops raw lines down to maxLines and forces a full rebuild,
// since the parse state of the remaining lines depends on what came before.
func (m *Model) trimOldLines() int {
	removeCount := len(m.raw) - m.maxLines
	if removeCount <= 0 {
		return 0
	}

	m.raw = append([]string(nil), m.raw[removeCount:]...)
	removed := m.lines.TrimFromStart(removeCount)
	m.formatted = max(0, m.formatted-removeCount)
	m.needsRebuild = true

	log.Printf("trimmed %d lines (%d rows)", removeCount, removed)
	return removed
}

// processLines brings the collection up to date with the raw buffer and the
// current settings.
func (m *Model) processLines() {
	width := m.contentWidth()
	m.formatter.SetContentWidth(width)
	m.formatter.SetWrapLines(m.wrapLines)

	if m.needsFullRebuild(width) {
		m.lines.SetLines(m.formatter.FormatLines(m.raw).Lines())
		m.formatted = len(m.raw)
	} else if m.formatted < len(m.raw) {
		m.lines.AppendLines(m.formatter.FormatNewLines(m.raw, m.formatted))
		m.formatted = len(m.raw)
	}

	m.lines.SetContentWidth(width)
	m.lines.SetHideVendor(m.hideVendor)

	if m.following {
		m.viewport.GotoBottom()
	} else {
		m.viewport.SetOffset(m.viewport.Offset())
	}
}

func (m *Model) needsFullRebuild(width int) bool {
	if m.needsRebuild || width != m.lastWidth || m.wrapLines != m.lastWrap {
		m.needsRebuild = false
		m.lastWidth = width
		m.lastWrap = m.wrapLines
		return true
	}
	return false
}

// truncateFile empties the log on disk and forgets everything shown
func (m *Model) truncateFile() {
	if err := m.feed.Truncate(); err != nil {
		log.Printf("truncate %s: %v", m.feed.Path(), err)
		m.status = err.Error()
		return
	}
	m.resetState()
	m.processLines()
}

func (m *Model) resetState() {
	m.raw = nil
	m.formatted = 0
	m.lines.Clear()
	m.formatter.Reset()
	m.viewport.GotoTop()
	m.lastTimestamp = time.Time{}
	m.matchRow = -1
	m.needsRebuild = true
}

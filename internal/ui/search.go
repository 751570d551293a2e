package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searchTerm = m.searchInput.Value()
		m.matchRow = -1
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.findNext(m.viewport.Offset(), 1)
		return m, nil

	case tea.KeyEsc:
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// findNext scrolls to the first display row at or after from (before, when
// dir is negative) containing the search term, wrapping around the ends.
func (m *Model) findNext(from, dir int) {
	if m.searchTerm == "" {
		return
	}

	rows := m.lines.AllDisplayLines()
	if len(rows) == 0 {
		m.status = fmt.Sprintf("pattern not found: %s", m.searchTerm)
		return
	}

	needle := strings.ToLower(m.searchTerm)
	n := len(rows)
	start := ((from % n) + n) % n
	for i := 0; i < n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if strings.Contains(strings.ToLower(ansi.Strip(rows[idx])), needle) {
			m.following = false
			m.matchRow = idx
			m.viewport.SetOffset(idx)
			return
		}
	}
	m.matchRow = -1
	m.status = fmt.Sprintf("pattern not found: %s", m.searchTerm)
}

// searchAnchor is the row n and N search from: the last match while it is
// still on screen, otherwise the top row.
func (m *Model) searchAnchor() int {
	offset := m.viewport.Offset()
	if m.matchRow >= offset && m.matchRow < offset+m.viewport.Height() {
		return m.matchRow
	}
	return offset
}

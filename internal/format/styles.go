package format

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles the formatter applies
type Styles struct {
	Dim lipgloss.Style
}

// DefaultStyles returns faint borders and ordinals
func DefaultStyles() Styles {
	return Styles{
		Dim: lipgloss.NewStyle().Faint(true),
	}
}

package box

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"shorter", "abc", 6, "abc   "},
		{"exact", "abcd", 4, "abcd"},
		{"longer is cut", "abcdef", 4, "abcd"},
		{"zero width", "abc", 0, ""},
		{"empty", "", 3, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pad(tt.in, tt.width))
		})
	}
}

func TestPadIgnoresEscapes(t *testing.T) {
	styled := "\x1b[2mab\x1b[0m"
	got := Pad(styled, 5)
	assert.Equal(t, 5, ansi.StringWidth(got))
	assert.Equal(t, "ab   ", ansi.Strip(got))
}

func TestBordersShareWidth(t *testing.T) {
	dim := lipgloss.NewStyle().Faint(true)
	for _, width := range []int{20, 80, 100, 137} {
		header := ansi.Strip(Header(width, dim))
		footer := ansi.Strip(Footer(width, dim))
		row := ansi.Strip(Row("#01 /app/Foo.php(3): bar()", width, dim))
		marker := ansi.Strip(CollapsedMarker(7, width, dim))

		for name, s := range map[string]string{"header": header, "footer": footer, "row": row, "marker": marker} {
			assert.Equal(t, width, ansi.StringWidth(s), "%s at width %d", name, width)
		}

		assert.True(t, strings.HasPrefix(header, " ╭─Trace"))
		assert.True(t, strings.HasSuffix(header, "╮"))
		assert.True(t, strings.HasPrefix(footer, " ╰═"))
		assert.True(t, strings.HasSuffix(footer, "╯"))
		assert.True(t, strings.HasPrefix(row, " │ #01"))
		assert.True(t, strings.HasSuffix(row, " │"))
		assert.True(t, strings.HasPrefix(marker, " │ #…"))
		assert.True(t, strings.HasSuffix(marker, " │"))
		if label := "#… (7 vendor frames)"; width-Overhead >= ansi.StringWidth(label) {
			assert.Contains(t, marker, label)
		}
	}
}

func TestCollapsedMarkerCutAtNarrowWidth(t *testing.T) {
	marker := ansi.Strip(CollapsedMarker(7, 20, lipgloss.NewStyle()))
	assert.Equal(t, 20, ansi.StringWidth(marker))
	assert.Equal(t, " │ #… (7 vendor fr │", marker)
}

func TestRowCutsOverlongContent(t *testing.T) {
	row := ansi.Strip(Row(strings.Repeat("x", 50), 20, lipgloss.NewStyle()))
	assert.Equal(t, 20, ansi.StringWidth(row))
	assert.True(t, strings.HasSuffix(row, " │"))
}

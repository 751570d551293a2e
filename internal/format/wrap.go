package format

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const truncationIndicator = " ..."

var leadingEscape = regexp.MustCompile(`^\x1b\[[0-9;?]*[ -/]*[@-~]`)

// Wrap splits line into rows no wider than width. The first row uses the
// whole width; the rest is wrapped at width-indent and prefixed with indent
// spaces. With wrapping disabled the result is a single row ending in an
// indicator, and count still reports how many rows wrapping would produce.
func (f *Formatter) Wrap(line string, width, indent int) (rows []string, count int) {
	if width <= 0 {
		return []string{line}, 1
	}

	rows = WrapLine(line, width, indent)
	count = len(rows)
	if f.wrapLines || count <= 1 {
		return rows, count
	}

	indicator := f.styles.Dim.Render(truncationIndicator)
	avail := width - ansi.StringWidth(indicator)
	if avail <= 0 {
		return []string{ansi.Truncate(indicator, width, "")}, count
	}
	return []string{wrapRows(rows[0], avail)[0] + indicator}, count
}

// WrapLine word-wraps line, breaking words that do not fit on a row of their
// own. Continuation rows hold the original text after the first row, so no
// characters are added or lost at the break. Whitespace-only rows are dropped.
func WrapLine(line string, width, indent int) []string {
	if width <= 0 {
		return []string{line}
	}

	first := wrapRows(line, width)[0]
	result := []string{first}

	rest := trimLeadingSpace(ansi.TruncateLeft(line, ansi.StringWidth(first), ""))
	if blank(rest) {
		return result
	}

	indent = min(max(indent, 0), width-1)
	contWidth := width - indent
	pad := strings.Repeat(" ", indent)
	for _, row := range wrapRows(rest, contWidth) {
		if blank(row) {
			continue
		}
		result = append(result, pad+row)
	}
	return result
}

// wrapRows is an ANSI-aware word wrap followed by a hard wrap for words
// longer than width.
func wrapRows(s string, width int) []string {
	rows := strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
	for i, row := range rows {
		if ansi.StringWidth(row) > width {
			rows[i] = ansi.Truncate(row, width, "")
		}
	}
	return rows
}

// trimLeadingSpace drops leading spaces while keeping any escape sequences
// interleaved with them.
func trimLeadingSpace(s string) string {
	var kept strings.Builder
	for len(s) > 0 {
		if s[0] == ' ' {
			s = s[1:]
			continue
		}
		if loc := leadingEscape.FindStringIndex(s); loc != nil {
			kept.WriteString(s[:loc[1]])
			s = s[loc[1]:]
			continue
		}
		break
	}
	return kept.String() + s
}

func blank(s string) bool {
	return strings.TrimSpace(ansi.Strip(s)) == ""
}

// expandTabs replaces tabs with spaces so widths stay predictable
func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

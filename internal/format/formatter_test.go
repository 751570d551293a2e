package format

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exceptionLine = `[2024-01-15 10:30:45] local.ERROR: Something failed {"exception":"[object] (RuntimeException(code: 0): Something failed at /var/www/app/Http/Controllers/HomeController.php:42)`
	vendorFrame   = `#0 /var/www/vendor/laravel/framework/src/Illuminate/Routing/Controller.php(54): App\Http\Controllers\HomeController->index()`
	appFrame      = `#2 /var/www/app/Http/Middleware/Authenticate.php(20): Illuminate\Routing\Route->run()`
	mainFrame     = `#3 {main}`
)

func sampleTrace() []string {
	return []string{
		exceptionLine,
		"[stacktrace]",
		vendorFrame,
		`#1 /var/www/vendor/laravel/framework/src/Illuminate/Routing/ControllerDispatcher.php(43): Illuminate\Routing\Controller->callAction('index', Array)`,
		appFrame,
		mainFrame,
		`"}`,
	}
}

func plain(rows []string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = ansi.Strip(r)
	}
	return out
}

func TestClassify(t *testing.T) {
	inTrace := ParseState{InStackTrace: true}
	tests := []struct {
		name  string
		raw   string
		state ParseState
		want  LineKind
	}{
		{"footer", `"}`, ParseState{}, KindFooter},
		{"indented footer", `  "}  `, inTrace, KindFooter},
		{"exception header", exceptionLine, ParseState{}, KindExceptionHeader},
		{"trace header", "[stacktrace]", ParseState{}, KindTraceHeader},
		{"frame", vendorFrame, inTrace, KindFrame},
		{"frame after reset code", "\x1b[0m#3 /path/to/file.php(123)", ParseState{}, KindFrame},
		{"continuation", "    ->handle()", inTrace, KindContinuation},
		{"plain outside trace", "    ->handle()", ParseState{}, KindPlain},
		{"plain", "[2024-01-15 10:30:45] local.INFO: hello", ParseState{}, KindPlain},
		{"brace mid line is not footer", `value "} trailing`, inTrace, KindContinuation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw, ansi.Strip(tt.raw), tt.state))
		})
	}
}

func TestIsVendorFrame(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{vendorFrame, true},
		{appFrame, false},
		{mainFrame, true},
		{"\x1b[0m#9 {main}", true},
		{`#4 /var/www/vendor/laravel/framework/src/Illuminate/Container/BoundMethod.php(36): App\Jobs\SendMail->handle()`, false},
		{`#4 /var/www/vendor/laravel/framework/src/Illuminate/Container/BoundMethod.php(36): Illuminate\Container\Util::unwrapIfClosure()`, true},
		{"#0 [internal function]: foo()", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsVendorFrame(tt.line), tt.line)
	}
}

func TestThreeLineTrace(t *testing.T) {
	f := NewFormatter(100)
	c := f.FormatLines([]string{"[stacktrace]", "#0 /vendor/x/File.php(1): f()", `"}`})

	rows := plain(c.AllDisplayLines())
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 100, ansi.StringWidth(r))
	}
	assert.True(t, strings.HasPrefix(rows[0], " ╭─Trace"))
	assert.True(t, strings.HasSuffix(rows[0], "╮"))
	assert.True(t, strings.HasPrefix(rows[1], " │ "))
	assert.True(t, strings.HasSuffix(rows[1], " │"))
	assert.True(t, strings.HasPrefix(rows[2], " ╰"))
	assert.True(t, strings.HasSuffix(rows[2], "╯"))
}

func TestTraceBordersAlign(t *testing.T) {
	for _, width := range []int{100, 80, 40} {
		f := NewFormatter(width)
		c := f.FormatLines(sampleTrace())

		lines := c.Lines()
		require.Len(t, lines, 7)
		for _, line := range lines[1:] {
			for _, row := range plain(line.FormattedLines()) {
				assert.Equal(t, width, ansi.StringWidth(row), "width %d: %q", width, row)
				last := []rune(row)[len([]rune(row))-1]
				assert.Contains(t, "╮│╯", string(last))
			}
		}
	}
}

func TestTraceBoxHasNoBlankRows(t *testing.T) {
	f := NewFormatter(60)
	c := f.FormatLines(sampleTrace())
	for _, line := range c.Lines()[2:6] {
		for _, row := range plain(line.FormattedLines()) {
			inner := strings.Trim(row, " │╭╮╰╯─═")
			assert.NotEmpty(t, strings.TrimSpace(inner), "blank row in trace box")
		}
	}
}

func TestFrameOrdinalPadding(t *testing.T) {
	f := NewFormatter(100)
	f.FormatLine("[stacktrace]", 0)

	single := plain(f.FormatLine("#3 /app/Foo.php(3): bar()", 1).FormattedLines())
	assert.Contains(t, single[0], "#03 /app/Foo.php(3): bar()")

	double := plain(f.FormatLine("#12 /app/Foo.php(3): bar()", 2).FormattedLines())
	assert.Contains(t, double[0], "#12 /app/Foo.php(3): bar()")
	assert.NotContains(t, double[0], "#012")
}

func TestVendorGrouping(t *testing.T) {
	f := NewFormatter(120)
	f.FormatLine("[stacktrace]", 0)

	v1 := f.FormatLine("#0 /app/vendor/a.php(1): a()", 1)
	cont := f.FormatLine("    wrapped by the writer", 2)
	v2 := f.FormatLine("#1 /app/vendor/b.php(1): b()", 3)
	app := f.FormatLine("#2 /app/src/c.php(1): c()", 4)
	appCont := f.FormatLine("    more of c", 5)
	v3 := f.FormatLine("#3 {main}", 6)

	assert.Equal(t, 1, v1.VendorGroupID())
	assert.True(t, cont.IsVendorFrame())
	assert.Equal(t, 1, cont.VendorGroupID())
	assert.Equal(t, 1, v2.VendorGroupID())
	assert.False(t, app.IsVendorFrame())
	assert.Equal(t, 0, app.VendorGroupID())
	assert.False(t, appCont.IsVendorFrame())
	assert.Equal(t, 0, appCont.VendorGroupID())
	assert.Equal(t, 2, v3.VendorGroupID())
	assert.True(t, v3.IsCollapsibleVendor())

	state := f.State()
	assert.Equal(t, 2, state.GroupID)
	assert.True(t, state.InVendorGroup)
	assert.True(t, state.InStackTrace)

	f.FormatLine(`"}`, 7)
	assert.False(t, f.State().InStackTrace)
	assert.False(t, f.State().InVendorGroup)
}

func TestFiveVendorAppMainScenario(t *testing.T) {
	raw := []string{"[stacktrace]"}
	for i := 0; i < 5; i++ {
		raw = append(raw, "#"+string(rune('0'+i))+" /var/www/vendor/pkg/File.php(1): f()")
	}
	raw = append(raw, "#5 /var/www/app/Jobs/Run.php(9): handle()", "#6 {main}", `"}`)

	f := NewFormatter(100)
	c := f.FormatLines(raw)
	c.SetHideVendor(true)

	rows := plain(c.AllDisplayLines())
	require.Len(t, rows, 5)
	inner := rows[1:4]
	assert.Contains(t, inner[0], "#… (5 vendor frames)")
	assert.Contains(t, inner[1], "#05 /var/www/app/Jobs/Run.php(9): handle()")
	assert.Contains(t, inner[2], "#… (1 vendor frames)")
	for _, r := range rows {
		assert.Equal(t, 100, ansi.StringWidth(r))
	}

	c.SetHideVendor(false)
	assert.Equal(t, 9, c.DisplayLineCount())
}

func TestExceptionHeader(t *testing.T) {
	f := NewFormatter(40)
	line := f.FormatLine(exceptionLine, 0)

	rows := plain(line.FormattedLines())
	require.Greater(t, len(rows), 2)
	assert.True(t, strings.HasPrefix(rows[0], "[2024-01-15 10:30:45]"))
	for _, r := range rows {
		assert.LessOrEqual(t, ansi.StringWidth(r), 40)
	}
	last := rows[len(rows)-1]
	assert.True(t, strings.HasPrefix(last, " "), "exception rows are indented")
	assert.Equal(t, line.WrapCount(), line.FullWrapCount())
	assert.False(t, f.State().InVendorGroup)

	f.SetWrapLines(false)
	truncated := f.FormatLine(exceptionLine, 0)
	assert.Equal(t, 2, truncated.WrapCount())
	assert.Equal(t, line.FullWrapCount(), truncated.FullWrapCount())
}

func TestPlainLineTruncation(t *testing.T) {
	f := NewFormatter(20)
	text := "The quick brown fox jumps over the lazy dog"

	wrapped := f.FormatLine(text, 0)
	assert.Equal(t, 3, wrapped.WrapCount())

	f.SetWrapLines(false)
	truncated := f.FormatLine(text, 0)
	rows := plain(truncated.FormattedLines())
	require.Len(t, rows, 1)
	assert.Equal(t, "The quick brown ...", rows[0])
	assert.Equal(t, 3, truncated.FullWrapCount())
}

func TestShortLineUnaffectedByWrapMode(t *testing.T) {
	f := NewFormatter(80)
	short := "short line"
	wrapped := f.FormatLine(short, 0)
	f.SetWrapLines(false)
	truncated := f.FormatLine(short, 0)

	assert.Equal(t, []string{short}, plain(wrapped.FormattedLines()))
	assert.Equal(t, []string{short}, plain(truncated.FormattedLines()))
}

func TestTabsExpand(t *testing.T) {
	f := NewFormatter(80)
	f.SetTabWidth(2)
	line := f.FormatLine("a\tb", 0)
	assert.Equal(t, []string{"a  b"}, plain(line.FormattedLines()))
	assert.Equal(t, "a\tb", line.Content())
}

type redRenderer struct{}

func (redRenderer) Render(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func TestHighlighterAppliesToPlainLines(t *testing.T) {
	f := NewFormatter(80)
	f.SetHighlighter(redRenderer{})

	line := f.FormatLine("hello", 0)
	assert.Contains(t, line.FormattedLines()[0], "\x1b[31m")
	assert.Equal(t, "hello", ansi.Strip(line.FormattedLines()[0]))

	f.FormatLine("[stacktrace]", 1)
	frame := f.FormatLine("#0 /app/a.php(1): a()", 2)
	assert.NotContains(t, frame.FormattedLines()[0], "\x1b[31m")
}

func TestResetClearsState(t *testing.T) {
	f := NewFormatter(80)
	f.FormatLines([]string{"[stacktrace]", vendorFrame})
	require.NotEqual(t, ParseState{}, f.State())

	f.Reset()
	assert.Equal(t, ParseState{}, f.State())
}

func TestFormatNewLinesKeepsState(t *testing.T) {
	raw := []string{"[stacktrace]", vendorFrame, "#1 /var/www/vendor/x/y.php(2): z()", `"}`}

	f := NewFormatter(100)
	c := f.FormatLines(raw[:2])
	next := f.FormatNewLines(raw, 2)

	require.Len(t, next, 2)
	assert.Equal(t, c.Lines()[1].VendorGroupID(), next[0].VendorGroupID())
	assert.Equal(t, 2, next[0].OriginalIndex())
	assert.Equal(t, 3, next[1].OriginalIndex())

	c.AppendLines(next)
	c.SetHideVendor(true)
	assert.Contains(t, ansi.Strip(c.AllDisplayLines()[1]), "#… (2 vendor frames)")
}

func TestFormatLinesResetsState(t *testing.T) {
	f := NewFormatter(100)
	f.FormatLines([]string{"[stacktrace]", vendorFrame, appFrame, mainFrame})
	c := f.FormatLines([]string{"[stacktrace]", vendorFrame})
	assert.Equal(t, 1, c.Lines()[1].VendorGroupID())
	assert.Equal(t, 100, c.ContentWidth())
}

func TestNilHighlighterFallsBackToPlain(t *testing.T) {
	f := NewFormatter(80)
	f.SetHighlighter(redRenderer{})
	f.SetHighlighter(nil)

	line := f.FormatLine("hello", 0)
	assert.Equal(t, []string{"hello"}, line.FormattedLines())
}

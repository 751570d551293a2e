package format

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var boundMethodApp = regexp.MustCompile(`BoundMethod\.php\([0-9]+\): App`)

// IsVendorFrame reports whether a frame points into library code. The
// execution root ({main}) always counts as vendor; container calls that
// bounce back into the application namespace do not.
func IsVendorFrame(line string) bool {
	plain := ansi.Strip(line)
	if strings.Contains(plain, "/vendor/") && !boundMethodApp.MatchString(plain) {
		return true
	}
	return strings.HasSuffix(plain, "{main}")
}

package format

import (
	"regexp"
	"strings"
)

// LineKind is the classification of a raw log line
type LineKind int

// Line kinds, in the order the classification rules are tried
const (
	KindPlain           LineKind = iota // anything outside a trace
	KindFooter                          // the `"}` closing a serialized exception
	KindExceptionHeader                 // a log message carrying an exception
	KindTraceHeader                     // the [stacktrace] line
	KindFrame                           // a numbered frame such as "#3 /path(12): call()"
	KindContinuation                    // any other line inside a trace
)

// String returns the kind name
func (k LineKind) String() string {
	switch k {
	case KindFooter:
		return "footer"
	case KindExceptionHeader:
		return "exception"
	case KindTraceHeader:
		return "trace"
	case KindFrame:
		return "frame"
	case KindContinuation:
		return "continuation"
	default:
		return "plain"
	}
}

const (
	exceptionMarker  = `{"exception":"[object] `
	stacktraceMarker = "[stacktrace]"
	footerMarker     = `"}`
)

var frameOrdinal = regexp.MustCompile(`#[0-9]+ `)

type rule struct {
	kind  LineKind
	match func(raw, plain string, st ParseState) bool
}

// rules are evaluated in order, first match wins
var rules = []rule{
	{KindFooter, func(raw, plain string, _ ParseState) bool {
		return strings.Contains(raw, footerMarker) && strings.TrimSpace(plain) == footerMarker
	}},
	{KindExceptionHeader, func(raw, _ string, _ ParseState) bool {
		return strings.Contains(raw, exceptionMarker)
	}},
	{KindTraceHeader, func(raw, _ string, _ ParseState) bool {
		return strings.Contains(raw, stacktraceMarker)
	}},
	{KindFrame, func(raw, _ string, _ ParseState) bool {
		return frameOrdinal.MatchString(raw)
	}},
	{KindContinuation, func(_, _ string, st ParseState) bool {
		return st.InStackTrace
	}},
}

// Classify returns the kind of raw given the current parse state. plain is
// raw with styling removed.
func Classify(raw, plain string, st ParseState) LineKind {
	for _, r := range rules {
		if r.match(raw, plain, st) {
			return r.kind
		}
	}
	return KindPlain
}

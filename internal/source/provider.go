package source

// DisplayProvider is the core abstraction for reading rendered rows.
// The viewport only interacts with this interface.
type DisplayProvider interface {
	// DisplayLineCount returns the number of rows in the current projection
	DisplayLineCount() int

	// DisplayLines returns up to count rows starting at start
	DisplayLines(start, count int) []string
}

// LineFeed delivers raw lines from a growing source
type LineFeed interface {
	Tail(n int) ([]string, error)
	Refresh() (lines []string, truncated bool, err error)
	Truncate() error
	Path() string
	Close() error
}

var (
	_ DisplayProvider = (*Collection)(nil)
	_ LineFeed        = (*FileSource)(nil)
)

package logformat

import (
	"regexp"
	"strconv"
	"time"
)

// TimestampParser detects and parses timestamps from log lines
type TimestampParser struct {
	patterns []timestampPattern
	now      func() time.Time
}

type timestampPattern struct {
	regex   *regexp.Regexp
	layouts []string
}

const (
	layoutUnix   = "unix"
	layoutUnixMs = "unix_ms"
)

// NewTimestampParser creates a parser with common timestamp formats
func NewTimestampParser() *TimestampParser {
	return &TimestampParser{
		now: time.Now,
		patterns: []timestampPattern{
			// [2024-01-15 10:30:45] as written by Laravel and Monolog
			{
				regex:   regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{1,6})?)\]`),
				layouts: []string{"2006-01-02 15:04:05.999999", "2006-01-02 15:04:05"},
			},
			// 2024-01-15T10:30:45.123Z
			{
				regex:   regexp.MustCompile(`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2}))`),
				layouts: []string{time.RFC3339Nano},
			},
			// 2024-01-15 10:30:45.123
			{
				regex:   regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{3})?)`),
				layouts: []string{"2006-01-02 15:04:05.000", "2006-01-02 15:04:05"},
			},
			// Jan 15 10:30:45
			{
				regex:   regexp.MustCompile(`([A-Z][a-z]{2} +\d{1,2} \d{2}:\d{2}:\d{2})`),
				layouts: []string{"Jan 2 15:04:05", "Jan  2 15:04:05"},
			},
			// 15/Jan/2024:10:30:45 +0000
			{
				regex:   regexp.MustCompile(`(\d{2}/[A-Z][a-z]{2}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4})`),
				layouts: []string{"02/Jan/2006:15:04:05 -0700"},
			},
			{
				regex:   regexp.MustCompile(`^(\d{13})(?:\D|$)`),
				layouts: []string{layoutUnixMs},
			},
			{
				regex:   regexp.MustCompile(`^(\d{10})(?:\D|$)`),
				layouts: []string{layoutUnix},
			},
		},
	}
}

// Parse extracts the first recognised timestamp from a line
func (p *TimestampParser) Parse(line string) (time.Time, bool) {
	for _, pattern := range p.patterns {
		matches := pattern.regex.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		if t, ok := p.parseWith(matches[1], pattern.layouts); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func (p *TimestampParser) parseWith(value string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		switch layout {
		case layoutUnix, layoutUnixMs:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				continue
			}
			if layout == layoutUnixMs {
				return time.UnixMilli(n), true
			}
			return time.Unix(n, 0), true
		}

		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		// syslog stamps carry no year
		if t.Year() == 0 {
			t = time.Date(p.now().Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
		}
		return t, true
	}
	return time.Time{}, false
}

// FormatTime formats a timestamp for display
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04:05")
}

// FormatTimeWithDate formats a timestamp with date for display
func FormatTimeWithDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

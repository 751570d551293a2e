package logformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampParser(t *testing.T) {
	p := NewTimestampParser()
	p.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name string
		line string
		want string
	}{
		{"laravel", "[2024-01-15 10:30:45] local.ERROR: boom", "2024-01-15 10:30:45"},
		{"laravel micro", "[2024-01-15 10:30:45.123456] local.INFO: ok", "2024-01-15 10:30:45"},
		{"rfc3339", "level=info ts=2024-01-15T10:30:45.5Z msg=hi", "2024-01-15 10:30:45"},
		{"datetime", "2024-01-15 10:30:45.123 worker started", "2024-01-15 10:30:45"},
		{"syslog", "Jan 15 10:30:45 host sshd[1]: ok", "2024-01-15 10:30:45"},
		{"apache", `127.0.0.1 - - [15/Jan/2024:10:30:45 +0000] "GET /"`, "2024-01-15 10:30:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := p.Parse(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, FormatTimeWithDate(ts))
		})
	}
}

func TestTimestampParserUnix(t *testing.T) {
	p := NewTimestampParser()

	ts, ok := p.Parse("1705314645 event")
	require.True(t, ok)
	assert.Equal(t, int64(1705314645), ts.Unix())

	ts, ok = p.Parse("1705314645123 event")
	require.True(t, ok)
	assert.Equal(t, int64(1705314645123), ts.UnixMilli())
}

func TestTimestampParserNoMatch(t *testing.T) {
	_, ok := NewTimestampParser().Parse("#3 {main}")
	assert.False(t, ok)
}

func TestFormatTime(t *testing.T) {
	assert.Empty(t, FormatTime(time.Time{}))
	assert.Empty(t, FormatTimeWithDate(time.Time{}))

	ts := time.Date(2024, 1, 15, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "09:05:07", FormatTime(ts))
	assert.Equal(t, "2024-01-15 09:05:07", FormatTimeWithDate(ts))
}

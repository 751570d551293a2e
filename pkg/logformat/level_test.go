package logformat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimelordUK/vtail/internal/config"
)

func TestLevelDetector(t *testing.T) {
	d := NewLevelDetector(&config.DefaultConfig().LogLevels)

	tests := []struct {
		line string
		want Level
	}{
		{"[2024-01-15 10:30:45] production.ERROR: boom", LevelError},
		{"[2024-01-15 10:30:45] local.WARNING: careful", LevelWarn},
		{"[2024-01-15 10:30:45] local.INFO: hello", LevelInfo},
		{"[2024-01-15 10:30:45] local.NOTICE: hello", LevelInfo},
		{"[2024-01-15 10:30:45] local.DEBUG: x", LevelDebug},
		{"[2024-01-15 10:30:45] local.CRITICAL: down", LevelFatal},
		{"[DBG] noisy", LevelDebug},
		{"[INFO] retry after [ERROR] earlier", LevelError},
		{"#0 /app/Http/Kernel.php(12): handle()", LevelUnknown},
		{"", LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.line))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "FATAL", LevelFatal.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestEmptyPatternsNeverMatch(t *testing.T) {
	d := NewLevelDetector(&config.LogLevelConfig{ErrorPatterns: []string{""}})
	assert.Equal(t, LevelUnknown, d.Detect("anything"))
}

package logformat

import (
	"strings"

	"github.com/TimelordUK/vtail/internal/config"
)

// Level represents a log severity level
type Level int

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// severityOrder is checked most severe first
var severityOrder = []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

// LevelDetector detects log levels from line content
type LevelDetector struct {
	patterns map[Level][]string
}

// NewLevelDetector creates a detector from config
func NewLevelDetector(cfg *config.LogLevelConfig) *LevelDetector {
	return &LevelDetector{
		patterns: map[Level][]string{
			LevelTrace: cfg.TracePatterns,
			LevelDebug: cfg.DebugPatterns,
			LevelInfo:  cfg.InfoPatterns,
			LevelWarn:  cfg.WarnPatterns,
			LevelError: cfg.ErrorPatterns,
			LevelFatal: cfg.FatalPatterns,
		},
	}
}

// Detect returns the log level for a line
func (d *LevelDetector) Detect(line string) Level {
	for _, level := range severityOrder {
		for _, pattern := range d.patterns[level] {
			if pattern != "" && strings.Contains(line, pattern) {
				return level
			}
		}
	}
	return LevelUnknown
}

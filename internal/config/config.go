package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Theme       ThemeConfig      `toml:"theme"`
	LogLevels   LogLevelConfig   `toml:"log_levels"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Display     DisplayConfig    `toml:"display"`
	Tail        TailConfig       `toml:"tail"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Dim           string         `toml:"dim"` // empty means faint
	StatusBar     string         `toml:"status_bar"`
	StatusBarText string         `toml:"status_bar_text"`
	SearchMatch   string         `toml:"search_match"`
	ContextStyle  string         `toml:"context_style"` // chroma style for JSON context
	Levels        LogLevelColors `toml:"levels"`
}

// LogLevelColors defines colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// KeybindingConfig allows customizing keybindings
type KeybindingConfig struct {
	Quit         []string `toml:"quit"`
	ScrollUp     []string `toml:"scroll_up"`
	ScrollDown   []string `toml:"scroll_down"`
	PageUp       []string `toml:"page_up"`
	PageDown     []string `toml:"page_down"`
	Top          []string `toml:"top"`
	Bottom       []string `toml:"bottom"`
	ToggleVendor []string `toml:"toggle_vendor"`
	ToggleWrap   []string `toml:"toggle_wrap"`
	ToggleFollow []string `toml:"toggle_follow"`
	Truncate     []string `toml:"truncate"`
	Search       []string `toml:"search"`
	NextMatch    []string `toml:"next_match"`
	PrevMatch    []string `toml:"prev_match"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	WrapLines        bool `toml:"wrap_lines"`
	HideVendor       bool `toml:"hide_vendor"`
	TabWidth         int  `toml:"tab_width"`
	Colorize         bool `toml:"colorize"`
	HighlightContext bool `toml:"highlight_context"`
}

// TailConfig controls how much of the file is kept and how often it is polled
type TailConfig struct {
	Lines           int `toml:"lines"`
	MaxLines        int `toml:"max_lines"`
	FrameIntervalMs int `toml:"frame_interval_ms"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Dim:           "",
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
			SearchMatch:   "226", // Yellow
			ContextStyle:  "monokai",
			Levels: LogLevelColors{
				Trace: "240",
				Debug: "244",
				Info:  "250",
				Warn:  "214",
				Error: "167",
				Fatal: "196",
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{".TRACE:", "[TRACE]", "[TRC]"},
			DebugPatterns: []string{".DEBUG:", "[DEBUG]", "[DBG]"},
			InfoPatterns:  []string{".INFO:", ".NOTICE:", "[INFO]", "[INF]"},
			WarnPatterns:  []string{".WARNING:", "[WARN]", "[WARNING]", "[WRN]"},
			ErrorPatterns: []string{".ERROR:", "[ERROR]", "[ERR]"},
			FatalPatterns: []string{".CRITICAL:", ".ALERT:", ".EMERGENCY:", "[FATAL]", "[FTL]"},
		},
		Keybindings: KeybindingConfig{
			Quit:         []string{"q", "ctrl+c"},
			ScrollUp:     []string{"k", "up"},
			ScrollDown:   []string{"j", "down"},
			PageUp:       []string{"b", "pgup", "ctrl+u"},
			PageDown:     []string{"pgdown", "ctrl+d"},
			Top:          []string{"g", "home"},
			Bottom:       []string{"G", "end"},
			ToggleVendor: []string{"v"},
			ToggleWrap:   []string{"w"},
			ToggleFollow: []string{"f", " "},
			Truncate:     []string{"t"},
			Search:       []string{"/"},
			NextMatch:    []string{"n"},
			PrevMatch:    []string{"N"},
		},
		Display: DisplayConfig{
			WrapLines:        true,
			HideVendor:       false,
			TabWidth:         4,
			Colorize:         true,
			HighlightContext: true,
		},
		Tail: TailConfig{
			Lines:           100,
			MaxLines:        1000,
			FrameIntervalMs: 25,
		},
	}
}

// Normalize replaces out-of-range numeric settings with their defaults
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Display.TabWidth <= 0 {
		c.Display.TabWidth = def.Display.TabWidth
	}
	if c.Tail.Lines < 0 {
		c.Tail.Lines = def.Tail.Lines
	}
	if c.Tail.MaxLines <= 0 {
		c.Tail.MaxLines = def.Tail.MaxLines
	}
	if c.Tail.FrameIntervalMs <= 0 {
		c.Tail.FrameIntervalMs = def.Tail.FrameIntervalMs
	}
	if c.Theme.ContextStyle == "" {
		c.Theme.ContextStyle = def.Theme.ContextStyle
	}
}

// FrameInterval returns the polling interval
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Tail.FrameIntervalMs) * time.Millisecond
}

// Load loads config from the default path, falling back to defaults
func Load() (*Config, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save saves config to the default path
func Save(cfg *Config) error {
	configPath := getConfigPath()
	if configPath == "" {
		return nil
	}
	return SaveTo(cfg, configPath)
}

// SaveTo writes config to path, creating parent directories
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vtail", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "vtail", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}

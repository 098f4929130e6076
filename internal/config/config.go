// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/meshmessenger/meshmessenger/internal/clock"
)

// AppName names the config and data directories.
const AppName = "meshmessenger"

// Default configuration values.
const (
	DefaultTitle       = "Mesh Messenger"
	DefaultWidth       = 65
	DefaultHeight      = 30
	DefaultPeer        = "Alexei"
	DefaultSelf        = "You"
	DefaultMaxMessages = 500
	DefaultInterval    = "1s"
	DefaultLightTheme  = "light"
	DefaultDarkTheme   = "dark"
)

// Minimum window size the layout can render.
const (
	MinWidth  = 30
	MinHeight = 8
)

// Config represents the meshmessenger configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Chat   ChatConfig   `toml:"chat"`
	Clock  ClockConfig  `toml:"clock"`
	Theme  ThemeConfig  `toml:"theme"`
}

// WindowConfig holds the window chrome settings.
type WindowConfig struct {
	Title  string `toml:"title"`  // Terminal title
	Width  int    `toml:"width"`  // Initial layout width until the terminal reports its size
	Height int    `toml:"height"` // Initial layout height
}

// ChatConfig holds conversation settings.
type ChatConfig struct {
	Peer        string `toml:"peer"`         // Shown in the header
	Self        string `toml:"self"`         // Sender name for submitted messages
	MaxMessages int    `toml:"max_messages"` // In-memory transcript cap (0 = unlimited)
}

// ClockConfig holds footer clock settings.
type ClockConfig struct {
	Interval string `toml:"interval"` // Refresh period, at most 1s
}

// ThemeConfig selects the palette for each mode. The window always
// starts in light mode.
type ThemeConfig struct {
	Light     string `toml:"light"`
	Dark      string `toml:"dark"`
	HotReload bool   `toml:"hot_reload"`
}

// Validation errors.
var (
	ErrEmptyTitle       = errors.New("window.title cannot be empty")
	ErrWindowTooSmall   = fmt.Errorf("window must be at least %dx%d", MinWidth, MinHeight)
	ErrEmptySelf        = errors.New("chat.self cannot be empty")
	ErrNegativeMax      = errors.New("chat.max_messages cannot be negative")
	ErrInvalidInterval  = errors.New("clock.interval must be a duration between 100ms and 1s")
	ErrEmptyPaletteName = errors.New("theme palette names cannot be empty")
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  DefaultTitle,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Chat: ChatConfig{
			Peer:        DefaultPeer,
			Self:        DefaultSelf,
			MaxMessages: DefaultMaxMessages,
		},
		Clock: ClockConfig{
			Interval: DefaultInterval,
		},
		Theme: ThemeConfig{
			Light:     DefaultLightTheme,
			Dark:      DefaultDarkTheme,
			HotReload: true,
		},
	}
}

// ConfigDir returns the meshmessenger config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// PalettesPath returns the user palettes directory.
func PalettesPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "palettes")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the window cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Window.Title) == "" {
		return ErrEmptyTitle
	}
	if c.Window.Width < MinWidth || c.Window.Height < MinHeight {
		return ErrWindowTooSmall
	}
	if strings.TrimSpace(c.Chat.Self) == "" {
		return ErrEmptySelf
	}
	if c.Chat.MaxMessages < 0 {
		return ErrNegativeMax
	}
	if _, err := c.ClockInterval(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Theme.Light) == "" || strings.TrimSpace(c.Theme.Dark) == "" {
		return ErrEmptyPaletteName
	}
	return nil
}

// ClockInterval parses the clock refresh period.
func (c *Config) ClockInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Clock.Interval)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if d < clock.MinInterval || d > clock.MaxInterval {
		return 0, ErrInvalidInterval
	}
	return d, nil
}

// Header returns the header label text.
func (c *Config) Header() string {
	if strings.TrimSpace(c.Chat.Peer) == "" {
		return "Chat"
	}
	return "Chat with " + c.Chat.Peer
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

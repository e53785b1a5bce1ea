package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	pErrors "github.com/zhubert/noro/internal/errors"
)

// DefaultReplyDelay is how long the bot "thinks" before answering.
const DefaultReplyDelay = 1000 * time.Millisecond

// MaxReplyDelay bounds reply_delay_ms so a typo cannot freeze the chat.
const MaxReplyDelay = time.Minute

// Config holds user preferences. It never holds transcript data: every chat
// session lives in memory only.
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a reply arrives in the background
	SidebarExpanded      bool   `json:"sidebar_expanded,omitempty"`      // Start with the sidebar expanded
	ReplyDelayMS         *int   `json:"reply_delay_ms,omitempty"`        // Reply delay override; nil means DefaultReplyDelay

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".noro"), nil
}

// DefaultPath returns ~/.noro/config.json
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns an empty config that will be saved to path.
func New(path string) *Config {
	return &Config{filePath: path}
}

// Load reads the config from the default location, or returns defaults if
// the file doesn't exist yet.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, pErrors.ConfigLoadFailed("~/.noro/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := New(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ReplyDelayMS != nil {
		d := time.Duration(*c.ReplyDelayMS) * time.Millisecond
		if d < 0 {
			return pErrors.ConfigInvalid("reply_delay_ms must not be negative")
		}
		if d > MaxReplyDelay {
			return pErrors.ConfigInvalid("reply_delay_ms must be at most 60000")
		}
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return pErrors.ConfigInvalid("config has no file path")
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// FilePath returns where Save writes.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath changes where Save writes.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetSidebarExpanded returns whether the sidebar starts expanded
func (c *Config) GetSidebarExpanded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SidebarExpanded
}

// SetSidebarExpanded sets whether the sidebar starts expanded
func (c *Config) SetSidebarExpanded(expanded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SidebarExpanded = expanded
}

// GetReplyDelay returns the configured reply delay, or DefaultReplyDelay.
func (c *Config) GetReplyDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ReplyDelayMS == nil {
		return DefaultReplyDelay
	}
	return time.Duration(*c.ReplyDelayMS) * time.Millisecond
}

// SetReplyDelay overrides the reply delay (rounded down to milliseconds).
func (c *Config) SetReplyDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ms := int(d / time.Millisecond)
	c.ReplyDelayMS = &ms
}

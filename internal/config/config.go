package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Config holds the application configuration
type Config struct {
	Theme                string    `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool      `json:"notifications_enabled,omitempty"` // Desktop notifications for unread messages
	Username             string    `json:"username,omitempty"`              // Display name pre-filled on the login form
	ServerURL            string    `json:"server_url,omitempty"`            // Chat service endpoint the feed reports connecting to
	LastLogin            time.Time `json:"last_login,omitempty"`            // When the user last signed in

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used by Load and by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		NotificationsEnabled: true,
		filePath:             path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if strings.ContainsAny(c.Username, "\n\r\t") {
		return fmt.Errorf("username contains control characters")
	}
	if c.ServerURL != "" && !strings.Contains(c.ServerURL, "://") {
		return fmt.Errorf("server_url %q is not a URL", c.ServerURL)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetTheme returns the saved theme name, or empty string for default
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme saves the theme name
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

// SetNotificationsEnabled saves the notification preference
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetUsername returns the last-used display name
func (c *Config) GetUsername() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Username
}

// SetUsername saves the display name used at login
func (c *Config) SetUsername(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Username = name
}

// MarkLogin records a successful sign-in time and display name
func (c *Config) MarkLogin(name string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Username = name
	c.LastLogin = at
}

// GetServerURL returns the configured chat service endpoint
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

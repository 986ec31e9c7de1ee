// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/wuchat-tui/internal/util"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config is the full application configuration.
type Config struct {
	API  APIConfig  `toml:"api"`
	Chat ChatConfig `toml:"chat"`
	UI   UIConfig   `toml:"ui"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the answer backend root, without the /api/ask path.
	BaseURL string `toml:"base_url"`

	// TimeoutSecs bounds a single request.
	TimeoutSecs int `toml:"timeout_secs"`

	// SourceDomain resolves bare source file names into URLs.
	SourceDomain string `toml:"source_domain"`
}

// ChatConfig configures conversation behavior.
type ChatConfig struct {
	// HistoryWindow is how many recent messages ride along as context.
	HistoryWindow int `toml:"history_window"`

	// UserName, when set, skips the name-collection flow.
	UserName string `toml:"user_name"`
}

// UIConfig configures rendering.
type UIConfig struct {
	Theme       string `toml:"theme"`
	ShowSources bool   `toml:"show_sources"`
	Markdown    bool   `toml:"markdown"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:8000",
			TimeoutSecs:  60,
			SourceDomain: "https://wichita.edu",
		},
		Chat: ChatConfig{
			HistoryWindow: 10,
		},
		UI: UIConfig{
			Theme:       "shocker",
			ShowSources: true,
			Markdown:    true,
		},
	}
}

// SetDefaults fills zero-valued fields. Lets a partial config file omit
// whole sections.
func (c *Config) SetDefaults() {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = d.API.TimeoutSecs
	}
	if c.API.SourceDomain == "" {
		c.API.SourceDomain = d.API.SourceDomain
	}
	if c.Chat.HistoryWindow == 0 {
		c.Chat.HistoryWindow = d.Chat.HistoryWindow
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, &ValidationError{Field: "api.base_url", Message: "must be an absolute http(s) URL"})
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 600 {
		errs = append(errs, &ValidationError{Field: "api.timeout_secs", Message: "must be between 1 and 600"})
	}
	if c.Chat.HistoryWindow < 0 || c.Chat.HistoryWindow > 100 {
		errs = append(errs, &ValidationError{Field: "chat.history_window", Message: "must be between 0 and 100"})
	}

	return errors.Join(errs...)
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the configuration directory (~/.config/wuchat).
func Dir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "wuchat")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wuchat"
	}
	return filepath.Join(home, ".wuchat")
}

// DefaultPath returns the configuration file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads and validates a config file. A missing file yields the
// defaults rather than an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		cfg.SetDefaults()
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides lets environment variables win over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("WUCHAT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("WUCHAT_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("WUCHAT_USER_NAME"); v != "" {
		c.Chat.UserName = v
	}
	if v := os.Getenv("WUCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// Save writes the config atomically.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o644)
}

// String renders the effective configuration for `wuchat config`.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("[api]\n")
	b.WriteString("  base_url      = " + c.API.BaseURL + "\n")
	b.WriteString("  timeout_secs  = " + strconv.Itoa(c.API.TimeoutSecs) + "\n")
	b.WriteString("  source_domain = " + c.API.SourceDomain + "\n")
	b.WriteString("[chat]\n")
	b.WriteString("  history_window = " + strconv.Itoa(c.Chat.HistoryWindow) + "\n")
	b.WriteString("  user_name      = " + c.Chat.UserName + "\n")
	b.WriteString("[ui]\n")
	b.WriteString("  theme        = " + c.UI.Theme + "\n")
	b.WriteString("  show_sources = " + strconv.FormatBool(c.UI.ShowSources) + "\n")
	b.WriteString("  markdown     = " + strconv.FormatBool(c.UI.Markdown) + "\n")
	return b.String()
}

// =============================================================================
// GLOBAL INSTANCE
// =============================================================================

var (
	globalMu   sync.RWMutex
	globalCfg  *Config
	globalOnce sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
// Load failures fall back to defaults; callers needing the error use Load
// directly.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load(DefaultPath())
		if err != nil {
			cfg = Default()
			cfg.ApplyEnvOverrides()
		}
		globalMu.Lock()
		globalCfg = cfg
		globalMu.Unlock()
	})
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCfg
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})
	globalMu.Lock()
	globalCfg = cfg
	globalMu.Unlock()
}

// ReloadGlobal re-reads the config file into the global instance.
func ReloadGlobal() error {
	cfg, err := Load(DefaultPath())
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// ResetGlobalForTesting clears the global so tests start clean.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = nil
	globalOnce = sync.Once{}
}

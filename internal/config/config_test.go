// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 60, cfg.API.TimeoutSecs)
	assert.Equal(t, "https://wichita.edu", cfg.API.SourceDomain)
	assert.Equal(t, 10, cfg.Chat.HistoryWindow)
	assert.True(t, cfg.UI.ShowSources)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nbase_url = \"https://ask.example.edu\"\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://ask.example.edu", cfg.API.BaseURL)
	assert.Equal(t, 60, cfg.API.TimeoutSecs, "omitted fields should pick up defaults")
	assert.Equal(t, 10, cfg.Chat.HistoryWindow)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api = [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"relative base url", func(c *Config) { c.API.BaseURL = "localhost:8000" }, "api.base_url"},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = -1 }, "api.timeout_secs"},
		{"huge timeout", func(c *Config) { c.API.TimeoutSecs = 10000 }, "api.timeout_secs"},
		{"negative history", func(c *Config) { c.Chat.HistoryWindow = -1 }, "chat.history_window"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("WUCHAT_API_URL", "https://env.example.edu")
	t.Setenv("WUCHAT_TIMEOUT_SECS", "30")
	t.Setenv("WUCHAT_USER_NAME", "Shocker")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://env.example.edu", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.Equal(t, "Shocker", cfg.Chat.UserName)
}

func TestApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("WUCHAT_TIMEOUT_SECS", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, 60, cfg.API.TimeoutSecs)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://saved.example.edu"
	cfg.Chat.UserName = "friend"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.edu", loaded.API.BaseURL)
	assert.Equal(t, "friend", loaded.Chat.UserName)
}

func TestGlobal_SetAndReset(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	custom := Default()
	custom.API.BaseURL = "https://global.example.edu"
	SetGlobal(custom)

	assert.Equal(t, "https://global.example.edu", Global().API.BaseURL)
}

package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NotEmpty(t, config.Software.RefreshSchedule)
}

func TestLoadFromFiles(t *testing.T) {
	t.Run("no files returns defaults", func(t *testing.T) {
		config, err := LoadFromFiles()
		require.NoError(t, err)
		assert.Equal(t, 8085, config.Server.Port)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tweakforge.toml")
		content := `
environment = "production"

[server]
port = 9090

[share]
base_url = "https://tweakforge.gg/#"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := LoadFromFiles(path)
		require.NoError(t, err)
		assert.Equal(t, "production", config.Environment)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "localhost", config.Server.Host) // untouched default
		assert.Equal(t, "https://tweakforge.gg/#", config.Share.BaseURL)
	})

	t.Run("later file wins", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first.toml")
		second := filepath.Join(dir, "second.toml")
		require.NoError(t, os.WriteFile(first, []byte("[server]\nport = 7000\n"), 0644))
		require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 7001\n"), 0644))

		config, err := LoadFromFiles(first, second)
		require.NoError(t, err)
		assert.Equal(t, 7001, config.Server.Port)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadFromFiles("/nonexistent/tweakforge.toml")
		assert.Error(t, err)
	})

	t.Run("env override wins over file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tweakforge.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 7000\n"), 0644))

		t.Setenv("TWEAKFORGE_SERVER_PORT", "7777")
		config, err := LoadFromFiles(path)
		require.NoError(t, err)
		assert.Equal(t, 7777, config.Server.Port)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero port rejected", func(c *Config) { c.Server.Port = 0 }, true},
		{"port above range rejected", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad cron schedule rejected", func(c *Config) { c.Software.RefreshSchedule = "not a schedule" }, true},
		{"empty schedule allowed", func(c *Config) { c.Software.RefreshSchedule = "" }, false},
		{"hourly schedule valid", func(c *Config) { c.Software.RefreshSchedule = "0 * * * *" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, 9999, "0.0.0.0")
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 9999, config.Server.Port, "zero values leave config untouched")
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

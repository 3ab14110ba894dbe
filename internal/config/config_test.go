package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"TRADEME_MCP_CONFIG",
		"TRADEME_MCP_LOG_LEVEL",
		"TRADEME_MCP_LOG_FORMAT",
		"TRADEME_MCP_TRANSPORT",
		"TRADEME_MCP_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.ConfigPath)
	assert.Empty(t, cfg.Transport)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Zero(t, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRADEME_MCP_CONFIG", "/etc/trademe.yaml")
	t.Setenv("TRADEME_MCP_LOG_LEVEL", "debug")
	t.Setenv("TRADEME_MCP_LOG_FORMAT", "json")
	t.Setenv("TRADEME_MCP_TRANSPORT", "http")
	t.Setenv("TRADEME_MCP_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/etc/trademe.yaml", cfg.ConfigPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("TRADEME_MCP_SHUTDOWN_TIMEOUT", "later")

	_, err := Load()
	require.Error(t, err)
}

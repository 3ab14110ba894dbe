package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewWriterText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "info", "text", "trademe-mcp")

	logger.Debug("hidden")
	logger.Info("server started")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "time=")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="server started"`)
	assert.Contains(t, out, "logger=trademe-mcp")
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "debug", "json", "trademe-mcp")

	logger.Debug("tool registered", "tool", "hello_world")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "tool registered", record["msg"])
	assert.Equal(t, "trademe-mcp", record["logger"])
	assert.Equal(t, "hello_world", record["tool"])
}

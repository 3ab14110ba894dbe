package configs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/trademe-mcp-server/configs"
	"github.com/codex-k8s/trademe-mcp-server/internal/dsl"
	"github.com/codex-k8s/trademe-mcp-server/internal/render"
)

func TestNames(t *testing.T) {
	assert.Contains(t, configs.Names(), configs.DefaultName)
}

func TestLoadErrors(t *testing.T) {
	_, err := configs.Load("")
	require.Error(t, err)
	_, err = configs.Load("absent.yaml")
	require.Error(t, err)
}

func TestDefaultRendersAndParses(t *testing.T) {
	raw, err := configs.Default()
	require.NoError(t, err)

	r := render.Renderer{Lookup: func(string) (string, bool) { return "", false }}
	rendered, err := r.RenderBytes(configs.DefaultName, raw)
	require.NoError(t, err)

	cfg, err := dsl.Load(rendered)
	require.NoError(t, err)
	assert.Equal(t, "Trade Me MCP Server", cfg.Server.Name)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, ":8080", cfg.Server.HTTP.Listen)
	assert.Equal(t, "https://api.trademe.co.nz/v1", cfg.API.BaseURL)
	assert.True(t, cfg.Server.Metrics.Enabled)
}

func TestDefaultHonorsEnv(t *testing.T) {
	raw, err := configs.Default()
	require.NoError(t, err)

	env := map[string]string{
		"TRADEME_MCP_YAML_TRANSPORT": "http",
		"TRADEME_API_BASE_URL":       "https://api.tmsandbox.co.nz/v1/",
	}
	r := render.Renderer{Lookup: func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}}
	rendered, err := r.RenderBytes(configs.DefaultName, raw)
	require.NoError(t, err)

	cfg, err := dsl.Load(rendered)
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, "https://api.tmsandbox.co.nz/v1", cfg.API.BaseURL)
}

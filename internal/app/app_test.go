package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/trademe-mcp-server/internal/dsl"
)

func testServerConfig() dsl.ServerConfig {
	return dsl.ServerConfig{
		Name:    "Trade Me MCP Server",
		Version: "0.1.0",
		HTTP: dsl.HTTPConfig{
			Listen: "127.0.0.1:0",
			Path:   "/mcp",
		},
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(context.Background(), testServerConfig(), nil, nil, nil, 0)
	require.Error(t, err)

	_, err = New(nil, testServerConfig(), http.NotFoundHandler(), nil, nil, 0)
	require.Error(t, err)
}

func TestRoutes(t *testing.T) {
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "mcp")
	})
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "metrics")
	})

	a, err := New(context.Background(), testServerConfig(), mcpHandler, map[string]http.Handler{
		"/metrics": metricsHandler,
		"":         metricsHandler,
		"/nil":     nil,
	}, nil, 0)
	require.NoError(t, err)

	cases := map[string]struct {
		code int
		body string
	}{
		"/mcp":     {http.StatusOK, "mcp"},
		"/metrics": {http.StatusOK, "metrics"},
		"/healthz": {http.StatusOK, `"status":"ok"`},
		"/readyz":  {http.StatusServiceUnavailable, `"status":"not ready"`},
		"/nil":     {http.StatusNotFound, ""},
	}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want.code, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want.body, path)
	}
}

func TestServeLifecycle(t *testing.T) {
	a, err := New(context.Background(), testServerConfig(), http.NotFoundHandler(), nil, slog.New(slog.DiscardHandler), time.Second)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/readyz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.False(t, a.health.Ready())
}

func TestRunListenError(t *testing.T) {
	cfg := testServerConfig()
	cfg.HTTP.Listen = "256.0.0.1:bad"
	a, err := New(context.Background(), cfg, http.NotFoundHandler(), nil, nil, 0)
	require.NoError(t, err)

	require.Error(t, a.Run(context.Background()))
}

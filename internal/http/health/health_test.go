package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, mux *http.ServeMux, path string) (int, Status) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec.Code, status
}

func TestProbes(t *testing.T) {
	h := New("Trade Me MCP Server", "0.1.0")
	mux := http.NewServeMux()
	h.Register(mux)

	code, status := probe(t, mux, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, Status{Status: "ok", Server: "Trade Me MCP Server", Version: "0.1.0"}, status)

	code, status = probe(t, mux, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", status.Status)

	h.SetReady()
	assert.True(t, h.Ready())
	code, status = probe(t, mux, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", status.Status)

	h.SetNotReady()
	code, _ = probe(t, mux, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

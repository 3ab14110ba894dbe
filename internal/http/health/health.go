package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// Status is the body returned by the probe endpoints.
type Status struct {
	Status  string `json:"status"`
	Server  string `json:"server,omitempty"`
	Version string `json:"version,omitempty"`
}

// Handler serves liveness and readiness probes.
type Handler struct {
	ready   atomic.Bool
	server  string
	version string
}

// New returns a health handler reporting the given server identity.
func New(server, version string) *Handler {
	return &Handler{server: server, version: version}
}

// SetReady marks the handler as ready.
func (h *Handler) SetReady() {
	h.ready.Store(true)
}

// SetNotReady marks the handler as not ready.
func (h *Handler) SetNotReady() {
	h.ready.Store(false)
}

// Ready reports the current readiness state.
func (h *Handler) Ready() bool {
	return h.ready.Load()
}

// Register mounts /healthz and /readyz on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/readyz", h.Readyz)
}

// Healthz handles liveness probes.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, "ok")
}

// Readyz handles readiness probes.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.ready.Load() {
		h.write(w, http.StatusOK, "ready")
		return
	}
	h.write(w, http.StatusServiceUnavailable, "not ready")
}

func (h *Handler) write(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Status{Status: status, Server: h.server, Version: h.version})
}

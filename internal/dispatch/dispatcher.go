package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codex-k8s/trademe-mcp-server/internal/audit"
	"github.com/codex-k8s/trademe-mcp-server/internal/auth"
	"github.com/codex-k8s/trademe-mcp-server/internal/metrics"
	"github.com/codex-k8s/trademe-mcp-server/internal/protocol"
	"github.com/codex-k8s/trademe-mcp-server/internal/registry"
	"github.com/codex-k8s/trademe-mcp-server/internal/security"
	"github.com/codex-k8s/trademe-mcp-server/internal/trademe"
)

// ClientFactory binds an API client to an acquired session.
type ClientFactory func(session auth.Session) trademe.API

// Config holds dispatcher dependencies.
type Config struct {
	// Registry declares the exposed tools.
	Registry *registry.Registry
	// Info is reported by get_server_info; Tools is filled from Registry.
	Info protocol.ServerInfo
	// Auth acquires a session per upstream call.
	Auth auth.Provider
	// Clients builds the API client for a session.
	Clients ClientFactory
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records invocation events.
	Audit audit.Logger
	// Metrics records invocation counters and latency.
	Metrics *metrics.ToolMetrics
}

type handlerFunc func(ctx context.Context, args registry.Args) Outcome

type boundTool struct {
	desc          registry.ToolDescriptor
	handle        handlerFunc
	failurePrefix string
}

// Dispatcher runs tool handlers. It holds no mutable state, so Call is safe for
// concurrent use.
type Dispatcher struct {
	tools   map[string]boundTool
	info    protocol.ServerInfo
	auth    auth.Provider
	clients ClientFactory
	logger  *slog.Logger
	audit   audit.Logger
	metrics *metrics.ToolMetrics
}

// New binds every registered tool to its handler.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Auth == nil {
		return nil, errors.New("auth provider is required")
	}
	if cfg.Clients == nil {
		return nil, errors.New("client factory is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := &Dispatcher{
		tools:   make(map[string]boundTool, cfg.Registry.Len()),
		info:    cfg.Info,
		auth:    cfg.Auth,
		clients: cfg.Clients,
		logger:  logger,
		audit:   cfg.Audit,
		metrics: cfg.Metrics,
	}
	d.info.Tools = cfg.Registry.Names()

	handlers := d.handlers()
	for _, desc := range cfg.Registry.Tools() {
		h, ok := handlers[desc.Name]
		if !ok {
			return nil, fmt.Errorf("no handler for tool %s", desc.Name)
		}
		h.desc = desc
		d.tools[desc.Name] = h
	}
	return d, nil
}

// Tools returns the names of dispatchable tools in registration order.
func (d *Dispatcher) Tools() []string {
	return slices.Clone(d.info.Tools)
}

// Call validates arguments, runs the tool and wraps the outcome. It never panics and
// never returns anything but a well-formed envelope.
func (d *Dispatcher) Call(ctx context.Context, name string, raw json.RawMessage) protocol.Envelope {
	correlationID := uuid.NewString()
	start := time.Now()
	d.record(ctx, audit.Event{Type: audit.EventToolCall, Tool: name, CorrelationID: correlationID})

	outcome, prefix := d.run(ctx, name, raw, correlationID)
	elapsed := time.Since(start)

	if outcome.OK() {
		env := protocol.Success(outcome.Data)
		d.logger.Info("tool ok", "tool", name, "correlation_id", correlationID, "elapsed", elapsed)
		d.metrics.Observe(name, env.Status, "", elapsed)
		d.record(ctx, audit.Event{Type: audit.EventToolOK, Tool: name, CorrelationID: correlationID, Status: env.Status, Elapsed: elapsed})
		return env
	}

	kind := outcome.Failure.kind()
	detail := flatten(outcome.Failure.Error())
	env := protocol.Error(prefix + ": " + detail)
	d.logger.Error("tool failed", "tool", name, "correlation_id", correlationID, "kind", string(kind), "error", detail)
	d.metrics.Observe(name, env.Status, string(kind), elapsed)
	d.record(ctx, audit.Event{Type: audit.EventToolError, Tool: name, CorrelationID: correlationID, Status: env.Status, Kind: string(kind), Message: env.Message, Elapsed: elapsed})
	return env
}

func (d *Dispatcher) run(ctx context.Context, name string, raw json.RawMessage, correlationID string) (Outcome, string) {
	tool, ok := d.tools[name]
	if !ok {
		return fail(KindValidation, fmt.Errorf("unknown tool %q", name)), "Tool call failed"
	}
	args, ignored, err := tool.desc.Bind(raw)
	if len(ignored) > 0 {
		d.logger.Debug("ignored undeclared arguments", "tool", name, "correlation_id", correlationID, "args", ignored)
	}
	if err != nil {
		return fail(KindValidation, fmt.Errorf("invalid arguments: %w", err)), tool.failurePrefix
	}
	d.logger.Debug("tool call", "tool", name, "correlation_id", correlationID, "args", security.RedactArguments(args))
	return d.invoke(ctx, tool.handle, args), tool.failurePrefix
}

func (d *Dispatcher) invoke(ctx context.Context, handle handlerFunc, args registry.Args) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool handler panic", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			out = fail(KindUnexpected, fmt.Errorf("internal error: %v", r))
		}
	}()
	return handle(ctx, args)
}

func (d *Dispatcher) record(ctx context.Context, event audit.Event) {
	if d.audit != nil {
		d.audit.Record(ctx, event)
	}
}

func flatten(message string) string {
	return strings.ReplaceAll(strings.TrimSpace(message), "\n", "; ")
}

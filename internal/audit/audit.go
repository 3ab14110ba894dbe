package audit

import (
	"context"
	"log/slog"
	"time"
)

// Event types recorded per tool invocation.
const (
	EventToolCall  = "tool_call"
	EventToolOK    = "tool_ok"
	EventToolError = "tool_error"
)

// Event represents an audit entry for a tool invocation.
type Event struct {
	// Type describes the event kind.
	Type string
	// Tool is the tool name.
	Tool string
	// CorrelationID links events of the same invocation.
	CorrelationID string
	// Status is the envelope status, empty for tool_call.
	Status string
	// Kind classifies the failure origin on tool_error.
	Kind string
	// Message is the failure message on tool_error.
	Message string
	// Elapsed is the invocation duration, zero for tool_call.
	Elapsed time.Duration
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("type", event.Type),
		slog.String("tool", event.Tool),
		slog.String("correlation_id", event.CorrelationID),
	}
	if event.Status != "" {
		attrs = append(attrs, slog.String("status", event.Status))
	}
	if event.Kind != "" {
		attrs = append(attrs, slog.String("kind", event.Kind))
	}
	if event.Message != "" {
		attrs = append(attrs, slog.String("message", event.Message))
	}
	if event.Elapsed > 0 {
		attrs = append(attrs, slog.Duration("elapsed", event.Elapsed))
	}
	l.logger.LogAttrs(ctx, slog.LevelInfo, "audit", attrs...)
}

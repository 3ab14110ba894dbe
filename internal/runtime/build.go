package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/trademe-mcp-server/internal/dispatch"
	"github.com/codex-k8s/trademe-mcp-server/internal/dsl"
	"github.com/codex-k8s/trademe-mcp-server/internal/protocol"
	"github.com/codex-k8s/trademe-mcp-server/internal/registry"
)

// Builder constructs an MCP server from the tool registry.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Registry declares the tools to expose.
	Registry *registry.Registry
	// Dispatcher executes tool calls.
	Dispatcher *dispatch.Dispatcher
}

// Build creates an MCP server with every registered tool.
func (b Builder) Build(cfg *dsl.Config) (*mcp.Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if b.Registry == nil {
		return nil, errors.New("registry is nil")
	}
	if b.Dispatcher == nil {
		return nil, errors.New("dispatcher is nil")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, &mcp.ServerOptions{
		Instructions: cfg.Server.Description,
	})

	for _, desc := range b.Registry.Tools() {
		if err := b.addTool(server, desc); err != nil {
			return nil, err
		}
	}

	return server, nil
}

func (b Builder) addTool(server *mcp.Server, desc registry.ToolDescriptor) error {
	schema, err := desc.InputSchema()
	if err != nil {
		return fmt.Errorf("tool %s: %w", desc.Name, err)
	}

	tool := &mcp.Tool{
		Name:        desc.Name,
		Title:       desc.Title,
		Description: desc.Description,
		InputSchema: schema,
		Annotations: buildAnnotations(desc),
	}

	name := desc.Name
	server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		return b.toolResult(name, b.Dispatcher.Call(ctx, name, raw)), nil
	})

	if b.Logger != nil {
		b.Logger.Debug("tool registered", "tool", desc.Name, "params", len(desc.Params))
	}
	return nil
}

// toolResult returns the envelope as structured content plus a JSON text block.
func (b Builder) toolResult(name string, env protocol.Envelope) *mcp.CallToolResult {
	text, err := json.Marshal(env)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Error("encode tool result failed", "tool", name, "error", err)
		}
		env = protocol.Error(fmt.Sprintf("Failed to encode %s result: %v", name, err))
		text, _ = json.Marshal(env)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: json.RawMessage(text),
		IsError:           env.IsError(),
	}
}

func buildAnnotations(desc registry.ToolDescriptor) *mcp.ToolAnnotations {
	destructive := false
	openWorld := desc.OpenWorld
	return &mcp.ToolAnnotations{
		Title:           desc.Title,
		ReadOnlyHint:    desc.ReadOnly,
		DestructiveHint: &destructive,
		IdempotentHint:  desc.ReadOnly,
		OpenWorldHint:   &openWorld,
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/trademe-mcp-server/configs"
	"github.com/codex-k8s/trademe-mcp-server/internal/app"
	"github.com/codex-k8s/trademe-mcp-server/internal/audit"
	"github.com/codex-k8s/trademe-mcp-server/internal/auth"
	"github.com/codex-k8s/trademe-mcp-server/internal/config"
	"github.com/codex-k8s/trademe-mcp-server/internal/constants"
	"github.com/codex-k8s/trademe-mcp-server/internal/dispatch"
	"github.com/codex-k8s/trademe-mcp-server/internal/dsl"
	"github.com/codex-k8s/trademe-mcp-server/internal/log"
	"github.com/codex-k8s/trademe-mcp-server/internal/metrics"
	"github.com/codex-k8s/trademe-mcp-server/internal/protocol"
	"github.com/codex-k8s/trademe-mcp-server/internal/registry"
	"github.com/codex-k8s/trademe-mcp-server/internal/render"
	"github.com/codex-k8s/trademe-mcp-server/internal/runtime"
	"github.com/codex-k8s/trademe-mcp-server/internal/trademe"
)

const loggerName = "trademe-mcp-server"

func main() {
	embeddedConfig := flag.String("embedded-config", "", "Use embedded config from configs/ (filename)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel, cfg.LogFormat, loggerName)

	dslCfg, err := loadServerConfig(cfg, *embeddedConfig)
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	toolMetrics := metrics.New()
	tools := registry.Default()
	clients := trademe.NewFactory(
		dslCfg.API.BaseURL,
		dsl.Duration(dslCfg.API.Timeout, 30*time.Second),
		dslCfg.API.RatePerSecond,
		dslCfg.API.Burst,
	)

	dispatcher, err := dispatch.New(dispatch.Config{
		Registry: tools,
		Info: protocol.ServerInfo{
			Name:        dslCfg.Server.Name,
			Version:     dslCfg.Server.Version,
			Description: dslCfg.Server.Description,
		},
		Auth:    auth.EnvProvider{},
		Clients: clients.New,
		Logger:  logger,
		Audit:   audit.New(logger),
		Metrics: toolMetrics,
	})
	if err != nil {
		logger.Error("build dispatcher failed", "error", err)
		os.Exit(1)
	}

	builder := runtime.Builder{
		Logger:     logger,
		Registry:   tools,
		Dispatcher: dispatcher,
	}
	server, err := builder.Build(dslCfg)
	if err != nil {
		logger.Error("build server failed", "error", err)
		os.Exit(1)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	logger.Info("starting server",
		"name", dslCfg.Server.Name,
		"version", dslCfg.Server.Version,
		"transport", dslCfg.Server.Transport,
		"tools", dispatcher.Tools(),
	)

	switch dslCfg.Server.Transport {
	case constants.TransportStdio:
		err = runStdio(baseCtx, server)
	default:
		err = runHTTP(baseCtx, cfg, dslCfg, server, toolMetrics, logger)
	}
	if err != nil {
		logger.Error("runtime error", "error", err)
		os.Exit(1)
	}
}

// loadServerConfig renders and parses the YAML, then applies env overrides.
func loadServerConfig(cfg config.Config, embedded string) (*dsl.Config, error) {
	var (
		rendered []byte
		err      error
	)
	switch {
	case embedded != "":
		rendered, err = renderEmbedded(embedded)
	case cfg.ConfigPath != "":
		rendered, err = render.RenderFile(cfg.ConfigPath)
	default:
		rendered, err = renderEmbedded(configs.DefaultName)
	}
	if err != nil {
		return nil, err
	}

	dslCfg, err := dsl.Load(rendered)
	if err != nil {
		return nil, err
	}
	if cfg.Transport != "" {
		dslCfg.Server.Transport = cfg.Transport
		if err := dsl.Validate(dslCfg); err != nil {
			return nil, err
		}
	}
	return dslCfg, nil
}

func renderEmbedded(name string) ([]byte, error) {
	raw, err := configs.Load(name)
	if err != nil {
		return nil, err
	}
	return render.RenderBytes(name, raw)
}

func runStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func runHTTP(ctx context.Context, envCfg config.Config, dslCfg *dsl.Config, server *mcp.Server, toolMetrics *metrics.ToolMetrics, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: dslCfg.Server.HTTP.Stateless,
	})

	extra := map[string]http.Handler{}
	if dslCfg.Server.Metrics.Enabled {
		extra[dslCfg.Server.Metrics.Path] = toolMetrics.Handler()
	}

	application, err := app.New(ctx, dslCfg.Server, handler, extra, logger, envCfg.ShutdownTimeout)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}

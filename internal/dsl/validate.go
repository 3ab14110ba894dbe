package dsl

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/codex-k8s/trademe-mcp-server/internal/constants"
)

// Defaults applied by Validate.
const (
	DefaultName        = "Trade Me MCP Server"
	DefaultVersion     = "0.1.0"
	DefaultDescription = "A simple MCP server for Trade Me API integration"
	DefaultListen      = ":8080"
	DefaultPath        = "/mcp"
	DefaultMetricsPath = "/metrics"
	DefaultBaseURL     = "https://api.trademe.co.nz/v1"
	DefaultAPITimeout  = "30s"
	DefaultRate        = 5.0
	DefaultBurst       = 5
)

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.Server.Name) == "" {
		cfg.Server.Name = DefaultName
	}
	if strings.TrimSpace(cfg.Server.Version) == "" {
		cfg.Server.Version = DefaultVersion
	}
	if strings.TrimSpace(cfg.Server.Description) == "" {
		cfg.Server.Description = DefaultDescription
	}

	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case "":
		cfg.Server.Transport = constants.TransportStdio
	case constants.TransportStdio, constants.TransportHTTP:
	default:
		return fmt.Errorf("server.transport must be stdio or http")
	}

	if strings.TrimSpace(cfg.Server.HTTP.Listen) == "" {
		cfg.Server.HTTP.Listen = DefaultListen
	}
	if cfg.Server.HTTP.Path == "" {
		cfg.Server.HTTP.Path = DefaultPath
	}
	if !strings.HasPrefix(cfg.Server.HTTP.Path, "/") {
		return fmt.Errorf("server.http.path must start with /")
	}
	if cfg.Server.Metrics.Path == "" {
		cfg.Server.Metrics.Path = DefaultMetricsPath
	}
	if !strings.HasPrefix(cfg.Server.Metrics.Path, "/") {
		return fmt.Errorf("server.metrics.path must start with /")
	}
	if cfg.Server.Metrics.Enabled && cfg.Server.Metrics.Path == cfg.Server.HTTP.Path {
		return fmt.Errorf("server.metrics.path must differ from server.http.path")
	}

	durations := map[string]string{
		"server.shutdown_timeout":   cfg.Server.ShutdownTimeout,
		"server.http.read_timeout":  cfg.Server.HTTP.ReadTimeout,
		"server.http.write_timeout": cfg.Server.HTTP.WriteTimeout,
		"server.http.idle_timeout":  cfg.Server.HTTP.IdleTimeout,
		"api.timeout":               cfg.API.Timeout,
	}
	for field, value := range durations {
		if strings.TrimSpace(value) == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s is invalid: %w", field, err)
		}
		if parsed < 0 {
			return fmt.Errorf("%s must be >= 0", field)
		}
	}

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if err := validateBaseURL(cfg.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if cfg.API.Timeout == "" {
		cfg.API.Timeout = DefaultAPITimeout
	}
	if cfg.API.RatePerSecond == 0 {
		cfg.API.RatePerSecond = DefaultRate
	}
	if cfg.API.RatePerSecond < 0 {
		return fmt.Errorf("api.rate_per_second must be > 0")
	}
	if cfg.API.Burst == 0 {
		cfg.API.Burst = DefaultBurst
	}
	if cfg.API.Burst < 0 {
		return fmt.Errorf("api.burst must be > 0")
	}
	return nil
}

func validateBaseURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// Duration parses value and returns def on empty or invalid input.
func Duration(value string, def time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

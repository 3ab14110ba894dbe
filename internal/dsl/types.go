package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes the MCP server settings.
	Server ServerConfig `yaml:"server"`
	// API configures the Trade Me API client.
	API APIConfig `yaml:"api"`
}

// ServerConfig defines MCP server settings.
type ServerConfig struct {
	// Name is the MCP server name reported to clients and by get_server_info.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Description is reported by get_server_info and sent as server instructions.
	Description string `yaml:"description"`
	// Transport selects the server transport ("stdio" or "http").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// HTTP configures HTTP transport.
	HTTP HTTPConfig `yaml:"http"`
	// Metrics configures the Prometheus endpoint on the HTTP transport.
	Metrics MetricsConfig `yaml:"metrics"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// MetricsConfig configures metrics exposure.
type MetricsConfig struct {
	// Enabled mounts the metrics handler.
	Enabled bool `yaml:"enabled"`
	// Path is the metrics endpoint path.
	Path string `yaml:"path"`
}

// APIConfig configures the upstream Trade Me client.
type APIConfig struct {
	// BaseURL is the API root, e.g. https://api.trademe.co.nz/v1.
	BaseURL string `yaml:"base_url"`
	// Timeout bounds a single HTTP request.
	Timeout string `yaml:"timeout"`
	// RatePerSecond paces requests across all tool calls.
	RatePerSecond float64 `yaml:"rate_per_second"`
	// Burst is the limiter bucket size.
	Burst int `yaml:"burst"`
}

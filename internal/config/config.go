package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the server.
type Config struct {
	// ConfigPath is the path to the YAML configuration file. Empty selects the embedded default.
	ConfigPath string `env:"TRADEME_MCP_CONFIG"`
	// LogLevel sets the logger level.
	LogLevel string `env:"TRADEME_MCP_LOG_LEVEL" envDefault:"info"`
	// LogFormat selects text or json log output.
	LogFormat string `env:"TRADEME_MCP_LOG_FORMAT" envDefault:"text"`
	// Transport overrides server.transport from the YAML when set.
	Transport string `env:"TRADEME_MCP_TRANSPORT"`
	// ShutdownTimeout overrides server.shutdown_timeout when non-zero.
	ShutdownTimeout time.Duration `env:"TRADEME_MCP_SHUTDOWN_TIMEOUT"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}

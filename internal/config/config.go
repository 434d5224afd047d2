package config

import (
	"errors"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"time"
)

const envPrefix = "admin"

// Config holds every setting of the admin server. Values come from ADMIN_* environment
// variables and may be overridden by command line flags.
type Config struct {
	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":3000"`
	BackendURL      string        `envconfig:"BACKEND_URL" default:"http://localhost:8080"`
	BackendTimeout  time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SessionCookie   string        `envconfig:"SESSION_COOKIE" default:"softscanner_session"`
	CookieSecure    bool          `envconfig:"COOKIE_SECURE" default:"false"`
	ServiceName     string        `envconfig:"SERVICE_NAME" default:"soft-scanner-frontend"`
	ServiceVersion  string        `envconfig:"SERVICE_VERSION" default:"dev"`
	TraceExporter   string        `envconfig:"TRACE_EXPORTER" default:"otlphttp"`
	TraceEndpoint   string        `envconfig:"TRACE_ENDPOINT"`
	TraceInsecure   bool          `envconfig:"TRACE_INSECURE" default:"true"`
	TraceSample     float64       `envconfig:"TRACE_SAMPLE_RATIO" default:"1.0"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

var (
	ErrInvalidExporter  = errors.New("unsupported trace exporter")
	ErrInvalidLogFormat = errors.New("unsupported log format")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

var supportedExporters = map[string]struct{}{
	"otlphttp": {},
	"otlpgrpc": {},
	"zipkin":   {},
	"stdout":   {},
	"none":     {},
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("unable to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, ok := supportedExporters[c.TraceExporter]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidExporter, c.TraceExporter)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.TraceSample < 0 || c.TraceSample > 1 {
		return fmt.Errorf("%w: trace sample ratio %v outside [0, 1]", ErrInvalidConfig, c.TraceSample)
	}
	if c.BackendURL == "" {
		return fmt.Errorf("%w: backend url is empty", ErrInvalidConfig)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidConfig)
	}
	if c.SessionCookie == "" {
		return fmt.Errorf("%w: session cookie name is empty", ErrInvalidConfig)
	}
	return nil
}

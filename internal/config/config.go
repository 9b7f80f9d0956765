package config

import (
	"fmt"

	pkgconfig "github.com/rosewoodpk/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Content store (Sanity-compatible API)
	CMSBaseURL    string `env:"CMS_BASE_URL" envDefault:""`
	CMSProjectID  string `env:"CMS_PROJECT_ID" envDefault:"ulz56sw2"`
	CMSDataset    string `env:"CMS_DATASET" envDefault:"production"`
	CMSAPIVersion string `env:"CMS_API_VERSION" envDefault:"2021-08-31"`
	CMSUseCDN     bool   `env:"CMS_USE_CDN" envDefault:"true"`
	CMSTimeout    int    `env:"CMS_TIMEOUT_SECONDS" envDefault:"10"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart/wishlist TTL in hours (default: 0, persist indefinitely)
	StoreTTL int `env:"STORE_TTL_HOURS" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"TRACING_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CMSBaseURL == "" && c.CMSProjectID == "" {
		return fmt.Errorf("either CMS_BASE_URL or CMS_PROJECT_ID must be set")
	}
	if c.StoreTTL < 0 {
		return fmt.Errorf("invalid store TTL: %d", c.StoreTTL)
	}
	return nil
}

package httpclient

import (
	"fmt"
	"time"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultHealthTimeout = 5 * time.Second
)

// Config configures one upstream HTTP adapter.
type Config struct {
	// Name identifies the upstream in logs and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each request, including reading the body. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// HealthPath, when set, is probed with GET by IsAvailable.
	HealthPath string `yaml:"health_path" mapstructure:"health_path"`

	// HealthTimeout bounds the health probe. Defaults to 5s.
	HealthTimeout time.Duration `yaml:"health_timeout" mapstructure:"health_timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.HealthTimeout <= 0 {
		c.HealthTimeout = defaultHealthTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.HealthPath != "" && c.BaseURL == "" {
		return fmt.Errorf("httpclient: health_path requires base_url")
	}
	return nil
}

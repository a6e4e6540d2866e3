package llm

// Config holds the per-adapter defaults applied to every request.
type Config struct {
	// Name identifies the adapter in logs and metrics. Defaults to the
	// dialect name.
	Name string `yaml:"name" mapstructure:"name"`

	// Dialect selects the provider mapping registered via RegisterDialect.
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	// Model is used when a request does not name one.
	Model string `yaml:"model" mapstructure:"model"`

	// Temperature is the default sampling temperature.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens is the default response limit. 0 means provider default.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// ErrorPrefix starts every transport and provider error message
	// (e.g., "API request failed: ").
	ErrorPrefix string `yaml:"error_prefix" mapstructure:"error_prefix"`
}

func (c *Config) applyDefaults(d Dialect) {
	if c.Name == "" {
		c.Name = d.Name()
	}
}

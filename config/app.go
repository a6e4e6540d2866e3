package config

import (
	"fmt"

	"github.com/kbukum/aigateway/observability"
	"github.com/kbukum/aigateway/server"
)

// ServiceName is the name the gateway loads its configuration under.
const ServiceName = "aigateway"

// AppConfig is the complete gateway configuration.
type AppConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	GatewayConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.GatewayConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section. Missing credentials are returned unwrapped
// so callers can match the CONFIG_ERROR code.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return c.GatewayConfig.Validate()
}

// EnvAliases maps config keys to the environment variables the gateway
// has always been configured with.
var EnvAliases = map[string]string{
	"gemini.api_key":         "GEMINI_API_KEY",
	"gemini.model":           "GEMINI_MODEL",
	"gemini.base_url":        "GEMINI_BASE_URL",
	"gemini.timeout":         "GEMINI_TIMEOUT",
	"ocr.api_key":            "OCR_API_KEY",
	"ocr.base_url":           "OCR_BASE_URL",
	"speech.api_key":         "SPEECH_TO_TEXT_API_KEY",
	"speech.base_url":        "SPEECH_TO_TEXT_BASE_URL",
	"mock_ai_response":       "MOCK_AI_RESPONSE",
	"server.port":            "PORT",
	"api_version":            "API_VERSION",
	"logging.level":          "LOG_LEVEL",
	"logging.format":         "LOG_FORMAT",
	"logging.output":         "LOG_OUTPUT",
	"observability.enabled":  "OTEL_ENABLED",
	"observability.endpoint": "OTEL_ENDPOINT",
}

// Defaults are registered with Viper so that every key can also be set
// through its path-derived environment variable.
var Defaults = map[string]any{
	"name":                      ServiceName,
	"environment":               "development",
	"version":                   "1.0.0",
	"api_version":               "v1",
	"mock_ai_response":          false,
	"gemini.model":              DefaultGeminiModel,
	"gemini.base_url":           DefaultGeminiBaseURL,
	"gemini.timeout":            DefaultGeminiTimeout.String(),
	"ocr.base_url":              DefaultOCRBaseURL,
	"ocr.timeout":               DefaultOCRTimeout.String(),
	"speech.base_url":           DefaultSpeechBaseURL,
	"speech.timeout":            DefaultSpeechTimeout.String(),
	"server.host":               "",
	"server.port":               3000,
	"server.max_body_size":      "260MB",
	"logging.level":             "info",
	"logging.format":            "console",
	"logging.output":            "stdout",
	"observability.enabled":     false,
	"observability.endpoint":    "localhost:4318",
	"observability.insecure":    true,
	"observability.sample_rate": 1.0,
}

// Load reads, defaults and validates the gateway configuration.
// A missing credential outside mock mode yields a CONFIG_ERROR.
func Load(opts ...LoaderOption) (*AppConfig, error) {
	all := append([]LoaderOption{WithDefaults(Defaults), WithEnvAliases(EnvAliases)}, opts...)

	var cfg AppConfig
	if err := LoadConfig(ServiceName, &cfg, all...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

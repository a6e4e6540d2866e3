package config

import (
	"fmt"
	"time"

	"github.com/kbukum/aigateway/errors"
)

// ProviderConfig describes how to reach one upstream inference provider.
type ProviderConfig struct {
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Upstream defaults.
const (
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiTimeout = 60 * time.Second
	DefaultOCRBaseURL    = "https://ocrdoc.infer.visai.ai"
	DefaultOCRTimeout    = 60 * time.Second
	DefaultSpeechBaseURL = "https://stt.infer.visai.ai"
	DefaultSpeechTimeout = 30 * time.Second
)

// GatewayConfig holds the three provider sections and the mock switch.
// It is read once at startup and not modified afterwards.
type GatewayConfig struct {
	Gemini ProviderConfig `yaml:"gemini" mapstructure:"gemini"`
	OCR    ProviderConfig `yaml:"ocr" mapstructure:"ocr"`
	Speech ProviderConfig `yaml:"speech" mapstructure:"speech"`

	// MockMode replaces every upstream call with a fixed fixture.
	MockMode bool `yaml:"mock_ai_response" mapstructure:"mock_ai_response"`
}

// ApplyDefaults fills unset URLs, models and timeouts.
func (c *GatewayConfig) ApplyDefaults() {
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultGeminiModel
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = DefaultGeminiBaseURL
	}
	if c.Gemini.Timeout <= 0 {
		c.Gemini.Timeout = DefaultGeminiTimeout
	}
	if c.OCR.BaseURL == "" {
		c.OCR.BaseURL = DefaultOCRBaseURL
	}
	if c.OCR.Timeout <= 0 {
		c.OCR.Timeout = DefaultOCRTimeout
	}
	if c.Speech.BaseURL == "" {
		c.Speech.BaseURL = DefaultSpeechBaseURL
	}
	if c.Speech.Timeout <= 0 {
		c.Speech.Timeout = DefaultSpeechTimeout
	}
}

// Validate reports every missing credential as one CONFIG_ERROR.
// Missing keys are tolerated in mock mode.
func (c *GatewayConfig) Validate() error {
	if c.MockMode {
		return nil
	}
	var missing []string
	if c.Gemini.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.Speech.APIKey == "" {
		missing = append(missing, "SPEECH_TO_TEXT_API_KEY")
	}
	if c.OCR.APIKey == "" {
		missing = append(missing, "OCR_API_KEY")
	}
	if len(missing) > 0 {
		return errors.Config(missing...)
	}
	return nil
}

// String hides credentials so the config can be logged.
func (p ProviderConfig) String() string {
	key := "unset"
	if p.APIKey != "" {
		key = "set"
	}
	return fmt.Sprintf("{base_url:%s model:%s timeout:%s api_key:%s}", p.BaseURL, p.Model, p.Timeout, key)
}

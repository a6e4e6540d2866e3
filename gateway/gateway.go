// Package gateway wires the three inference providers behind one facade:
// it builds their transports from configuration, applies mock mode and
// instrumentation, and manages their lifecycle as a component.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/aigateway/component"
	"github.com/kbukum/aigateway/config"
	"github.com/kbukum/aigateway/expense"
	"github.com/kbukum/aigateway/httpclient"
	"github.com/kbukum/aigateway/llm"
	"github.com/kbukum/aigateway/llm/gemini"
	"github.com/kbukum/aigateway/logger"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/provider"
	"github.com/kbukum/aigateway/transcription"
)

const (
	// ComponentName is the gateway's name in the component registry.
	ComponentName = "gateway"

	// TextProviderName labels the text model in logs, metrics and health.
	TextProviderName = "gemini"
	// TextErrorPrefix starts every text-model transport and provider error.
	TextErrorPrefix = "API request failed: "

	healthPath = "/health"
)

// Gateway is the entry point for every provider call. It holds no mutable
// state after New, so concurrent calls are safe.
type Gateway struct {
	cfg config.GatewayConfig
	log *logger.Logger

	ask     provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]
	expense expense.Provider
	ocr     ocr.Provider
	speech  transcription.Provider

	// providers holds the upstream-facing providers for health and close.
	providers *provider.Registry[provider.Provider]
}

var _ component.Component = (*Gateway)(nil)

// New builds the gateway. cfg is copied; defaults are applied and missing
// credentials fail with CONFIG_ERROR unless mock mode is on.
func New(cfg *config.GatewayConfig, opts ...Option) (*Gateway, error) {
	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.WithComponent(ComponentName)
	}

	textT, err := newTransport(o, c, KindText, httpclient.Config{
		Name:    TextProviderName,
		BaseURL: c.Gemini.BaseURL,
		Timeout: c.Gemini.Timeout,
		Auth:    httpclient.APIKeyAuthQuery(c.Gemini.APIKey, "key"),
	})
	if err != nil {
		return nil, err
	}
	ocrT, err := newTransport(o, c, KindOCR, httpclient.Config{
		Name:       ocr.Name,
		BaseURL:    c.OCR.BaseURL,
		Timeout:    c.OCR.Timeout,
		Auth:       httpclient.APIKeyAuth(c.OCR.APIKey),
		HealthPath: healthPath,
	})
	if err != nil {
		return nil, err
	}
	speechT, err := newTransport(o, c, KindSpeech, httpclient.Config{
		Name:       transcription.Name,
		BaseURL:    c.Speech.BaseURL,
		Timeout:    c.Speech.Timeout,
		Auth:       httpclient.APIKeyAuth(c.Speech.APIKey),
		HealthPath: healthPath,
	})
	if err != nil {
		return nil, err
	}

	model, err := llm.New(textT, llm.Config{
		Name:        TextProviderName,
		Dialect:     gemini.DialectName,
		Model:       c.Gemini.Model,
		ErrorPrefix: TextErrorPrefix,
	})
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		cfg:       c,
		log:       o.log,
		ask:       instrument(o, provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse](model)),
		expense:   instrument(o, expense.New(model)),
		ocr:       instrument(o, ocr.New(ocrT)),
		speech:    instrument(o, transcription.New(speechT)),
		providers: provider.NewRegistry[provider.Provider](),
	}
	for _, p := range []provider.Provider{g.ask, g.ocr, g.speech} {
		if err := g.providers.Register(p); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// newTransport creates the HTTP adapter for one provider and, in mock
// mode, puts the fixture in front of it.
func newTransport(o *options, c config.GatewayConfig, kind Kind, hc httpclient.Config) (llm.Transport, error) {
	var hopts []httpclient.Option
	if o.roundTripper != nil {
		hopts = append(hopts, httpclient.WithTransport(o.roundTripper))
	}
	adapter, err := httpclient.New(hc, hopts...)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s transport: %w", kind, err)
	}
	if !c.MockMode {
		return adapter, nil
	}
	return provider.WithMock[httpclient.Request, *httpclient.Response](mockTransport(kind))(adapter), nil
}

// MockMode reports whether upstream calls are replaced by fixtures.
func (g *Gateway) MockMode() bool { return g.cfg.MockMode }

// ExtractExpenses asks the text model for the expenses in text.
func (g *Gateway) ExtractExpenses(ctx context.Context, text string) (expense.Result, error) {
	return g.expense.Execute(ctx, expense.Request{Text: text})
}

// Ask sends question to the text model as is and returns its answer.
func (g *Gateway) Ask(ctx context.Context, question string) (string, error) {
	return llm.Complete(ctx, g.ask, "", question)
}

// ExtractText runs OCR over the files in req.
func (g *Gateway) ExtractText(ctx context.Context, req ocr.Request) ([]ocr.FileResult, error) {
	return g.ocr.Execute(ctx, req)
}

// Transcribe runs speech-to-text over the files in req.
func (g *Gateway) Transcribe(ctx context.Context, req transcription.Request) ([]transcription.FileResult, error) {
	return g.speech.Execute(ctx, req)
}

// --- component.Component ---

// Name returns the component name.
func (g *Gateway) Name() string { return ComponentName }

// Start logs the provider setup. Transports connect lazily.
func (g *Gateway) Start(_ context.Context) error {
	g.log.Info("gateway started", logger.Fields(
		"providers", strings.Join(g.providers.Names(), ","),
		"mock_mode", g.cfg.MockMode,
		TextProviderName, g.cfg.Gemini.String(),
		ocr.Name, g.cfg.OCR.String(),
		transcription.Name, g.cfg.Speech.String(),
	))
	return nil
}

// Stop releases every transport.
func (g *Gateway) Stop(ctx context.Context) error {
	return g.Close(ctx)
}

// Close releases every transport.
func (g *Gateway) Close(ctx context.Context) error {
	return g.providers.CloseAll(ctx)
}

// ProviderHealth probes each provider, sorted by name.
func (g *Gateway) ProviderHealth(ctx context.Context) []component.Health {
	avail := g.providers.Availability(ctx)
	out := make([]component.Health, 0, len(avail))
	for _, name := range g.providers.Names() {
		h := component.Health{Name: name, Status: component.StatusHealthy}
		if !avail[name] {
			h.Status = component.StatusUnhealthy
			h.Message = "health probe failed"
		}
		out = append(out, h)
	}
	return out
}

// Health is healthy when every provider answers its probe and degraded
// otherwise. The gateway keeps serving the providers that are up.
func (g *Gateway) Health(ctx context.Context) component.Health {
	var down []string
	for _, h := range g.ProviderHealth(ctx) {
		if h.Status != component.StatusHealthy {
			down = append(down, h.Name)
		}
	}
	if len(down) > 0 {
		return component.Health{
			Name:    ComponentName,
			Status:  component.StatusDegraded,
			Message: "unavailable: " + strings.Join(down, ", "),
		}
	}
	return component.Health{Name: ComponentName, Status: component.StatusHealthy}
}

// Describe reports the gateway for the startup summary.
func (g *Gateway) Describe() component.Description {
	details := fmt.Sprintf("%s model=%s ocr=%s speech=%s",
		TextProviderName, g.cfg.Gemini.Model, g.cfg.OCR.BaseURL, g.cfg.Speech.BaseURL)
	if g.cfg.MockMode {
		details += " (mock)"
	}
	return component.Description{Name: "AI Provider Gateway", Type: "gateway", Details: details}
}

package llm

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/httpclient"
	"github.com/kbukum/aigateway/provider"
)

// ErrNoDialect is returned when an adapter is built without a dialect.
var ErrNoDialect = errors.New("llm: dialect is required")

// Transport is the HTTP layer an Adapter sends through. *httpclient.Adapter
// satisfies it, and so does the same adapter wrapped in provider middleware.
type Transport = provider.RequestResponse[httpclient.Request, *httpclient.Response]

// Adapter is a text-model client that pairs a Transport with a Dialect.
//
// The transport owns base URL, auth and timeout. The dialect owns the
// provider's request and response shapes. Errors come back in the gateway
// taxonomy: TRANSPORT_ERROR, PROVIDER_ERROR, or PARSE_ERROR when the
// provider's envelope cannot be read.
//
// Adapter implements provider.RequestResponse[CompletionRequest, CompletionResponse]
// and provider.Closeable.
type Adapter struct {
	transport Transport
	dialect   Dialect
	cfg       Config
}

// New creates an adapter using the dialect registered under cfg.Dialect.
func New(transport Transport, cfg Config) (*Adapter, error) {
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(transport, dialect, cfg)
}

// NewWithDialect creates an adapter with an explicit dialect instance.
func NewWithDialect(transport Transport, dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	if transport == nil {
		return nil, errors.New("llm: transport is required")
	}
	cfg.applyDefaults(dialect)
	return &Adapter{transport: transport, dialect: dialect, cfg: cfg}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.cfg.Name }

// IsAvailable reports whether the provider is reachable. Dialects without a
// health endpoint defer to the transport, which treats a missing probe as up.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	return a.transport.IsAvailable(ctx)
}

// Close releases the transport.
func (a *Adapter) Close(ctx context.Context) error { return provider.Close(ctx, a.transport) }

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// Execute sends one completion request and returns the parsed response.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	a.applyDefaults(&req)

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, apperrors.Validation(err.Error()).WithCause(err)
	}

	resp, err := a.transport.Execute(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   a.dialect.ChatPath(req.Model),
		Body:   body,
	})
	if err != nil {
		return CompletionResponse{}, httpclient.ToAppError(a.cfg.Name, a.cfg.ErrorPrefix, err)
	}

	result, err := a.dialect.ParseResponse(resp.Body)
	if err != nil {
		return CompletionResponse{}, apperrors.Parse(err.Error(), string(resp.Body)).WithCause(err)
	}
	if result.Model == "" {
		result.Model = req.Model
	}
	return *result, nil
}

func (a *Adapter) applyDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.cfg.Model
	}
	if req.Temperature == 0 {
		req.Temperature = a.cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.cfg.MaxTokens
	}
}

package httpclient

import (
	"context"

	"github.com/kbukum/aigateway/provider"
)

var (
	_ provider.RequestResponse[Request, *Response] = (*Adapter)(nil)
	_ provider.Closeable                           = (*Adapter)(nil)
)

// WithAppErrors returns a middleware that converts every failure of the
// wrapped transport with ToAppError, so providers built on it only ever
// return gateway error codes.
func WithAppErrors(service, prefix string) provider.Middleware[Request, *Response] {
	return func(inner provider.RequestResponse[Request, *Response]) provider.RequestResponse[Request, *Response] {
		return &appErrorRR{inner: inner, service: service, prefix: prefix}
	}
}

type appErrorRR struct {
	inner   provider.RequestResponse[Request, *Response]
	service string
	prefix  string
}

func (a *appErrorRR) Name() string                         { return a.inner.Name() }
func (a *appErrorRR) IsAvailable(ctx context.Context) bool { return a.inner.IsAvailable(ctx) }
func (a *appErrorRR) Close(ctx context.Context) error      { return provider.Close(ctx, a.inner) }

func (a *appErrorRR) Execute(ctx context.Context, req Request) (*Response, error) {
	resp, err := a.inner.Execute(ctx, req)
	if err != nil {
		return resp, ToAppError(a.service, a.prefix, err)
	}
	return resp, nil
}

package provider

import (
	"context"

	"github.com/kbukum/aigateway/observability"
)

// WithTracing returns a Middleware that opens a span named
// "{serviceName}.{providerName}" around each Execute call.
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{wrapped: wrapped[I, O]{inner}, serviceName: serviceName}
	}
}

type tracingRR[I, O any] struct {
	wrapped[I, O]
	serviceName string
}

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, t.serviceName+"."+t.inner.Name())
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrServiceName, t.serviceName)
	observability.SetSpanAttribute(ctx, observability.AttrProvider, t.inner.Name())

	output, err := t.inner.Execute(ctx, input)
	observability.SetSpanAttribute(ctx, observability.AttrStatus, Outcome(err))
	if err != nil {
		observability.SetSpanError(ctx, err)
	}

	return output, err
}

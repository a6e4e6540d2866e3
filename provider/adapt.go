package provider

import "context"

// Adapt composes a domain provider [I, O] from a transport [BI, BO]:
//
//	build:     I  -> BI   request builder; validation happens here
//	transport: BI -> BO   the network call, or a mock
//	normalize: BO -> O    response normalizer
//
// When build fails the transport is never called, so invalid input costs
// no I/O and mock mode rejects it the same way live mode does.
func Adapt[I, O, BI, BO any](
	transport RequestResponse[BI, BO],
	name string,
	build func(ctx context.Context, input I) (BI, error),
	normalize func(output BO) (O, error),
) RequestResponse[I, O] {
	return &composed[I, O, BI, BO]{
		transport: transport,
		name:      name,
		build:     build,
		normalize: normalize,
	}
}

type composed[I, O, BI, BO any] struct {
	transport RequestResponse[BI, BO]
	name      string
	build     func(ctx context.Context, input I) (BI, error)
	normalize func(output BO) (O, error)
}

func (c *composed[I, O, BI, BO]) Name() string { return c.name }

// IsAvailable reports the transport's availability.
func (c *composed[I, O, BI, BO]) IsAvailable(ctx context.Context) bool {
	return c.transport.IsAvailable(ctx)
}

func (c *composed[I, O, BI, BO]) Execute(ctx context.Context, input I) (O, error) {
	var zero O
	req, err := c.build(ctx, input)
	if err != nil {
		return zero, err
	}
	raw, err := c.transport.Execute(ctx, req)
	if err != nil {
		return zero, err
	}
	return c.normalize(raw)
}

// Close releases the transport.
func (c *composed[I, O, BI, BO]) Close(ctx context.Context) error {
	return Close(ctx, c.transport)
}

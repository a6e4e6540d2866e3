package provider

import "context"

// WithMock returns a Middleware that answers every call from fixture and
// never reaches the wrapped provider. The mocked provider reports itself
// available regardless of the upstream.
func WithMock[I, O any](fixture func(input I) O) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &mockRR[I, O]{wrapped: wrapped[I, O]{inner}, fixture: fixture}
	}
}

type mockRR[I, O any] struct {
	wrapped[I, O]
	fixture func(I) O
}

func (m *mockRR[I, O]) IsAvailable(context.Context) bool { return true }

func (m *mockRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	if err := ctx.Err(); err != nil {
		var zero O
		return zero, err
	}
	return m.fixture(input), nil
}

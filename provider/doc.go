// Package provider is the generic abstraction every upstream sits behind.
//
// RequestResponse[I, O] is the single polymorphic interface: the HTTP
// transport is a RequestResponse[httpclient.Request, *httpclient.Response],
// and each domain provider is built on top of it with Adapt:
//
//	ocrProvider := provider.Adapt(transport, "ocr", ocr.BuildRequest, ocr.Normalize)
//
// Cross-cutting behaviour is added with Middleware and composed with Chain.
// The first middleware is outermost:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithTracing[In, Out]("aigateway"),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithCollector[In, Out](collector),
//	)(ocrProvider)
//
// WithMock answers from a fixture without calling the wrapped provider. The
// gateway applies it to transports so that fixtures still flow through the
// real normalizers.
//
// Registry keeps named instances for health reporting and shutdown.
package provider

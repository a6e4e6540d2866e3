// Package llm is a text-model client built on the gateway's HTTP transport.
//
// Provider-specific request and response shapes live behind the [Dialect]
// interface, much like database/sql drivers. A dialect sub-package registers
// itself on import:
//
//	import _ "github.com/kbukum/aigateway/llm/gemini"
//
//	adapter, err := llm.New(transport, llm.Config{
//	    Dialect:     "gemini",
//	    Model:       "gemini-2.0-flash",
//	    ErrorPrefix: "API request failed: ",
//	})
//	answer, err := llm.Complete(ctx, adapter, "", "How much is a coffee?")
//
// The transport is any provider.RequestResponse over httpclient requests, so
// a mocked or middleware-wrapped transport plugs in unchanged.
package llm

package llm

import (
	"fmt"
	"sort"
	"sync"
)

// Dialect maps the universal completion types to and from one provider's
// HTTP format.
//
// Dialects live in sub-packages (llm/gemini) and register themselves from
// init, so importing the package is enough to make the name resolvable.
type Dialect interface {
	// Name returns the dialect identifier (e.g., "gemini").
	Name() string

	// ChatPath returns the endpoint path for a completion with model.
	ChatPath(model string) string

	// HealthPath returns the health-check endpoint path. Empty means the
	// provider has none and is considered available when configured.
	HealthPath() string

	// BuildRequest maps a CompletionRequest to the provider's JSON body.
	BuildRequest(req CompletionRequest) (any, error)

	// ParseResponse maps the provider's JSON body to a CompletionResponse.
	ParseResponse(body []byte) (*CompletionResponse, error)
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry, replacing any
// dialect already registered under name.
//
//	func init() {
//	    llm.RegisterDialect("gemini", Dialect{})
//	}
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (forgot to import driver?)", name)
	}
	return d, nil
}

// Dialects returns the sorted names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

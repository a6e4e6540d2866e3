package httpclient

import "net/http"

// DefaultAPIKeyHeader is the header used by APIKeyAuth.
const DefaultAPIKeyHeader = "X-API-Key"

// KeyLocation says where an API key travels.
type KeyLocation string

const (
	InHeader KeyLocation = "header"
	InQuery  KeyLocation = "query"
)

// AuthConfig configures request authentication with a static API key.
type AuthConfig struct {
	// Key is the API key value.
	Key string
	// In is where to place the key. Defaults to InHeader.
	In KeyLocation
	// Name is the header or query parameter name. Defaults to DefaultAPIKeyHeader.
	Name string
}

// APIKeyAuth sends the key in the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Key: key, In: InHeader, Name: DefaultAPIKeyHeader}
}

// APIKeyAuthQuery sends the key as a query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Key: key, In: InQuery, Name: paramName}
}

// apply applies authentication to an HTTP request. A nil config or an empty
// key is a no-op, so mock-mode adapters without credentials still build.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Key == "" {
		return
	}
	name := a.Name
	if name == "" {
		name = DefaultAPIKeyHeader
	}
	if a.In == InQuery {
		q := req.URL.Query()
		q.Set(name, a.Key)
		req.URL.RawQuery = q.Encode()
		return
	}
	req.Header.Set(name, a.Key)
}

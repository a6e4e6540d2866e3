package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/aigateway/component"
	apperrors "github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/logger"
)

func newTestServer(t *testing.T, cfg Config, opts ...Option) *Server {
	t.Helper()
	cfg.Host = "127.0.0.1"
	s, err := New(cfg, logger.NewNop(), opts...)
	require.NoError(t, err)
	return s
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 90, cfg.WriteTimeout)
	assert.Equal(t, 5, cfg.ShutdownTimeout)
	assert.Equal(t, "260MB", cfg.MaxBodySize)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.CORS.ExposedHeaders, "X-Request-Id")
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"port", func(c *Config) { c.Port = 70000 }, "server.port"},
		{"timeout", func(c *Config) { c.WriteTimeout = -1 }, "server.write_timeout"},
		{"body size", func(c *Config) { c.MaxBodySize = "huge" }, "server.max_body_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mut(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	s := newTestServer(t, Config{})

	rr := serve(s, http.MethodGet, "/api/expenses/v2/nothing")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Not found", body["error"])
	assert.Equal(t, "Route /api/expenses/v2/nothing not found", body["message"])
	assert.Equal(t, float64(404), body["status"])
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		components []component.Health
		wantCode   int
		wantStatus string
	}{
		{"healthy", []component.Health{{Name: "ocr", Status: component.StatusHealthy}}, http.StatusOK, "OK"},
		{"degraded", []component.Health{{Name: "ocr", Status: component.StatusDegraded}}, http.StatusOK, "DEGRADED"},
		{"unhealthy", []component.Health{{Name: "gateway", Status: component.StatusUnhealthy}}, http.StatusServiceUnavailable, "UNHEALTHY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{})
			s.RegisterDefaultEndpoints("aigateway", func(context.Context) []component.Health { return tt.components }, nil)

			rr := serve(s, http.MethodGet, "/health")

			assert.Equal(t, tt.wantCode, rr.Code)
			body := decode(t, rr)
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, "aigateway", body["service"])
			assert.Len(t, body["components"], 1)
		})
	}
}

func TestInfoEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})
	s.RegisterDefaultEndpoints("aigateway", nil, nil)

	rr := serve(s, http.MethodGet, "/info")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "aigateway", body["service"])
	assert.NotEmpty(t, body["version"])
}

type countingObserver struct{ routes []string }

func (o *countingObserver) ObserveHTTPRequest(_, route string, _ int, _ time.Duration) {
	o.routes = append(o.routes, route)
}

func TestMetricsEndpointAndObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_hits_total", Help: "hits"})
	reg.MustRegister(hits)
	hits.Add(3)

	obs := &countingObserver{}
	s := newTestServer(t, Config{}, WithObserver(obs))
	s.RegisterDefaultEndpoints("aigateway", nil, reg)
	s.Engine().GET("/api/items/:id", func(c *gin.Context) { RespondOK(c, gin.H{"id": c.Param("id")}) })

	serve(s, http.MethodGet, "/api/items/7")
	rr := serve(s, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "test_hits_total 3")
	assert.Equal(t, []string{"/api/items/:id", "/metrics"}, obs.routes)
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
		wantCode2 string
	}{
		{"validation", apperrors.Validation("text: is required"), 400, "Validation failed", "VALIDATION_ERROR"},
		{"provider", apperrors.Provider("ocr", 502, "OCR API error: bad gateway"), 500, "Internal server error", "PROVIDER_ERROR"},
		{"plain", fmt.Errorf("boom"), 500, "Internal server error", "INTERNAL_ERROR"},
		{"too large", &http.MaxBytesError{Limit: 1024}, 413, "Payload too large", "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{})
			s.Engine().GET("/fail", func(c *gin.Context) { RespondWithError(c, tt.err) })

			rr := serve(s, http.MethodGet, "/fail")

			assert.Equal(t, tt.wantCode, rr.Code)
			body := decode(t, rr)
			assert.Equal(t, tt.wantError, body["error"])
			assert.Equal(t, tt.wantCode2, body["code"])
			assert.Equal(t, float64(tt.wantCode), body["status"])
		})
	}
}

func TestRespondSuccess(t *testing.T) {
	s := newTestServer(t, Config{})
	s.Engine().GET("/ok", func(c *gin.Context) { RespondSuccess(c, []int{1}, "done") })

	body := decode(t, serve(s, http.MethodGet, "/ok"))

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, []any{float64(1)}, body["data"])
}

func TestBodyLimitThroughChain(t *testing.T) {
	s := newTestServer(t, Config{MaxBodySize: "16B"})
	s.Engine().POST("/upload", func(c *gin.Context) { RespondOK(c, gin.H{}) })

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("x", 32))))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestLifecycle(t *testing.T) {
	s := newTestServer(t, Config{})
	s.httpServer.Addr = "127.0.0.1:0"
	s.Engine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	sc := NewComponent(s)

	assert.Equal(t, component.StatusUnhealthy, sc.Health(context.Background()).Status)
	require.NoError(t, sc.Start(context.Background()))
	assert.Equal(t, component.StatusHealthy, sc.Health(context.Background()).Status)

	resp, err := http.Get("http://" + s.Addr() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, sc.Stop(context.Background()))
}

func TestRoutesOrdering(t *testing.T) {
	s := newTestServer(t, Config{})
	s.RegisterDefaultEndpoints("aigateway", nil, nil)
	s.Engine().POST("/api/b", func(c *gin.Context) {})
	s.Engine().GET("/api/a", func(c *gin.Context) {})

	routes := NewComponent(s).Routes()

	paths := make([]string, 0, len(routes))
	for _, r := range routes {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/api/a", "/api/b", "/health", "/info", "/metrics"}, paths)
}

func TestHandlerName(t *testing.T) {
	tests := map[string]string{
		"github.com/kbukum/aigateway/api.(*Handler).Extract-fm":   "Handler.Extract",
		"github.com/kbukum/aigateway/server/endpoint.Health.func1": "Health",
		"github.com/gin-gonic/gin.WrapH.func1":                      "WrapH",
	}
	for in, want := range tests {
		assert.Equal(t, want, handlerName(in), in)
	}
}

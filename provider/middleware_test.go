package provider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/logger"
	"github.com/kbukum/aigateway/observability"
	"github.com/kbukum/aigateway/provider"
)

type echoProvider struct {
	name  string
	calls atomic.Int32
}

func (p *echoProvider) Name() string                       { return p.name }
func (p *echoProvider) IsAvailable(_ context.Context) bool { return true }
func (p *echoProvider) Execute(_ context.Context, in string) (string, error) {
	p.calls.Add(1)
	return "echo:" + in, nil
}

type failingProvider struct{ err error }

func (p *failingProvider) Name() string                       { return "fail" }
func (p *failingProvider) IsAvailable(_ context.Context) bool { return false }
func (p *failingProvider) Execute(_ context.Context, _ string) (string, error) {
	return "", p.err
}

func TestChain_Empty(t *testing.T) {
	p := &echoProvider{name: "test"}
	wrapped := provider.Chain[string, string]()(p)
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, err %v", result, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(tag string) provider.Middleware[string, string] {
		return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
			return provider.Func(inner.Name(), func(ctx context.Context, in string) (string, error) {
				order = append(order, tag+":before")
				out, err := inner.Execute(ctx, in)
				order = append(order, tag+":after")
				return out, err
			})
		}
	}

	wrapped := provider.Chain(mw("A"), nil, mw("B"))(&echoProvider{name: "test"})
	if _, err := wrapped.Execute(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "B:after", "A:after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", order, want)
	}
}

func TestWithLogging_WritesOutcome(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	wrapped := provider.WithLogging[string, string](log)(&failingProvider{
		err: apperrors.Provider("ocr", 502, "OCR API error: model offline"),
	})
	ctx := logger.ContextWithRequestID(context.Background(), "req-1")
	if _, err := wrapped.Execute(ctx, "x"); err == nil {
		t.Fatal("expected error")
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "error" || entry["provider"] != "fail" || entry["status"] != "provider_error" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("expected request id in log, got %v", entry["request_id"])
	}
}

func TestWithLogging_DelegatesNameAndAvailability(t *testing.T) {
	wrapped := provider.WithLogging[string, string](logger.NewNop())(&failingProvider{})
	if wrapped.Name() != "fail" {
		t.Errorf("Name() = %q", wrapped.Name())
	}
	if wrapped.IsAvailable(context.Background()) {
		t.Error("expected IsAvailable to delegate to inner provider")
	}
}

func TestWithTracing(t *testing.T) {
	wrapped := provider.WithTracing[string, string]("aigateway")(&echoProvider{name: "trace-test"})
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("got %q, %v", result, err)
	}
	if wrapped.Name() != "trace-test" {
		t.Fatalf("expected name 'trace-test', got %q", wrapped.Name())
	}
}

func TestWithMetrics(t *testing.T) {
	metrics, err := observability.NewMetrics(observability.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	ok := provider.WithMetrics[string, string](metrics)(&echoProvider{name: "metrics-test"})
	if result, err := ok.Execute(context.Background(), "hello"); err != nil || result != "echo:hello" {
		t.Fatalf("got %q, %v", result, err)
	}

	failing := provider.WithMetrics[string, string](metrics)(&failingProvider{err: errors.New("boom")})
	if _, err := failing.Execute(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}

type recordingCollector struct {
	calls []string
}

func (r *recordingCollector) ObserveProviderCall(name, status string, d time.Duration) {
	r.calls = append(r.calls, name+"/"+status)
}

func TestWithCollector(t *testing.T) {
	c := &recordingCollector{}

	_, _ = provider.WithCollector[string, string](c)(&echoProvider{name: "gemini"}).Execute(context.Background(), "x")
	_, _ = provider.WithCollector[string, string](c)(&failingProvider{
		err: apperrors.Parse("unexpected token", "hello"),
	}).Execute(context.Background(), "x")
	_, _ = provider.WithCollector[string, string](c)(&failingProvider{
		err: errors.New("plain"),
	}).Execute(context.Background(), "x")

	want := "gemini/ok,fail/parse_error,fail/error"
	if got := strings.Join(c.calls, ","); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWithMock_NeverCallsInner(t *testing.T) {
	inner := &echoProvider{name: "ocr-transport"}
	mocked := provider.WithMock[string, string](func(in string) string {
		return "fixture:" + in
	})(inner)

	for i := 0; i < 3; i++ {
		got, err := mocked.Execute(context.Background(), "x")
		if err != nil || got != "fixture:x" {
			t.Fatalf("got %q, %v", got, err)
		}
	}
	if inner.calls.Load() != 0 {
		t.Errorf("inner called %d times", inner.calls.Load())
	}
	if mocked.Name() != "ocr-transport" {
		t.Errorf("Name() = %q", mocked.Name())
	}
}

func TestWithMock_ReportsAvailableAndHonoursCancel(t *testing.T) {
	mocked := provider.WithMock[string, string](func(string) string { return "x" })(&failingProvider{})
	if !mocked.IsAvailable(context.Background()) {
		t.Error("mocked provider should be available")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mocked.Execute(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{apperrors.Validation("bad"), "validation_error"},
		{apperrors.Transport("ocr", "down", nil), "transport_error"},
		{errors.New("x"), "error"},
	}
	for _, tt := range tests {
		if got := provider.Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := provider.NewRegistry[provider.Provider]()
	if err := reg.Register(&echoProvider{name: "speech"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&failingProvider{}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&echoProvider{name: "speech"}); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	if got := strings.Join(reg.Names(), ","); got != "fail,speech" {
		t.Errorf("Names() = %s", got)
	}
	avail := reg.Availability(context.Background())
	if !avail["speech"] || avail["fail"] {
		t.Errorf("unexpected availability %v", avail)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("expected missing provider")
	}
	if err := reg.CloseAll(context.Background()); err != nil {
		t.Errorf("CloseAll: %v", err)
	}
}

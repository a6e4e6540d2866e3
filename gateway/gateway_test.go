package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/aigateway/attachment"
	"github.com/kbukum/aigateway/component"
	"github.com/kbukum/aigateway/config"
	"github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/logger"
	"github.com/kbukum/aigateway/observability"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/transcription"
)

// upstream is a fake provider host that counts every request it sees.
type upstream struct {
	*httptest.Server
	hits   atomic.Int32
	health atomic.Int32 // status for /health, 200 when zero
}

func newUpstream(t *testing.T, body string) *upstream {
	t.Helper()
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			if s := u.health.Load(); s != 0 {
				w.WriteHeader(int(s))
			}
			return
		}
		u.hits.Add(1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(u.Close)
	return u
}

func testConfig(text, ocrURL, speechURL string, mock bool) *config.GatewayConfig {
	return &config.GatewayConfig{
		Gemini:   config.ProviderConfig{APIKey: "g", BaseURL: text},
		OCR:      config.ProviderConfig{APIKey: "o", BaseURL: ocrURL},
		Speech:   config.ProviderConfig{APIKey: "s", BaseURL: speechURL},
		MockMode: mock,
	}
}

func image() attachment.File {
	return attachment.File{Filename: "receipt.jpg", MIMEType: "image/jpeg", Size: 3, Data: []byte("jpg")}
}

func audio() attachment.File {
	return attachment.File{Filename: "voice_01.m4a", MIMEType: "audio/x-m4a", Size: 3, Data: []byte("m4a")}
}

func TestSubstitute_Deterministic(t *testing.T) {
	for _, kind := range Kinds {
		a, ok := Substitute(kind)
		require.True(t, ok, kind)
		b, _ := Substitute(kind)
		assert.True(t, bytes.Equal(a.Body, b.Body), kind)
		assert.Equal(t, http.StatusOK, a.StatusCode)

		a.Body[0] = 'X'
		c, _ := Substitute(kind)
		assert.NotEqual(t, byte('X'), c.Body[0], "%s: callers get a fresh copy", kind)
	}

	_, ok := Substitute(Kind("video"))
	assert.False(t, ok)
}

func TestNew_MissingKeys(t *testing.T) {
	_, err := New(&config.GatewayConfig{})
	require.True(t, errors.IsCode(err, errors.ErrCodeConfig), "%v", err)

	_, err = New(&config.GatewayConfig{MockMode: true})
	assert.NoError(t, err)
}

func TestMockMode_NoNetwork(t *testing.T) {
	text := newUpstream(t, `{}`)
	ocrUp := newUpstream(t, `[]`)
	speechUp := newUpstream(t, `[]`)

	g, err := New(testConfig(text.URL, ocrUp.URL, speechUp.URL, true), WithLogger(logger.NewNop()))
	require.NoError(t, err)
	assert.True(t, g.MockMode())
	ctx := context.Background()

	pages, err := g.ExtractText(ctx, ocr.Request{Files: []attachment.File{image()}})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "receipt.jpg", pages[0].Filename)
	assert.Equal(t, "กาแฟ 60 บาท", pages[0].Result[0].Data[0].Text)
	assert.Equal(t, ocr.BBox{100, 200, 300, 250}, *pages[0].Result[0].Data[0].BBox)

	transcripts, err := g.Transcribe(ctx, transcription.Request{Files: []attachment.File{audio()}})
	require.NoError(t, err)
	require.Len(t, transcripts, 1)
	assert.Equal(t, "voice_01.m4a", transcripts[0].Filename)
	assert.Equal(t, 10.922666666666666, transcripts[0].Duration)
	require.Len(t, transcripts[0].Result, 2)
	assert.Equal(t, 0.6143344709897611, transcripts[0].Result[0].StartTime)
	assert.Equal(t, "มื้อเย็นกินสุกี้สองร้อยห้าสิบบาท", transcripts[0].Result[1].Transcript)

	result, err := g.ExtractExpenses(ctx, "กาแฟ 60 บาท")
	require.NoError(t, err)
	require.Len(t, result.Expenses, 3)
	assert.True(t, result.Expenses[2].Price.IsDash())
	assert.Equal(t, result.Total, result.NumericSum())

	assert.Equal(t, int32(0), text.hits.Load())
	assert.Equal(t, int32(0), ocrUp.hits.Load())
	assert.Equal(t, int32(0), speechUp.hits.Load())
}

func TestMockMode_ValidationStillRuns(t *testing.T) {
	g, err := New(&config.GatewayConfig{MockMode: true}, WithLogger(logger.NewNop()))
	require.NoError(t, err)

	_, err = g.ExtractText(context.Background(), ocr.Request{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))

	_, err = g.ExtractText(context.Background(), ocr.Request{Files: []attachment.File{image()}, BoxThreshold: ocr.Threshold(1.1)})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))

	_, err = g.ExtractExpenses(context.Background(), "   ")
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestLive_RoutesToEachUpstream(t *testing.T) {
	answer, _ := Substitute(KindText)
	ocrBody, _ := Substitute(KindOCR)
	text := newUpstream(t, string(answer.Body))
	ocrUp := newUpstream(t, string(ocrBody.Body))
	speechUp := newUpstream(t, `[]`)

	collector := observability.NewCollector("gateway")
	g, err := New(testConfig(text.URL, ocrUp.URL, speechUp.URL, false),
		WithLogger(logger.NewNop()), WithCollector(collector))
	require.NoError(t, err)
	ctx := context.Background()

	reply, err := g.Ask(ctx, "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "```json"))

	_, err = g.ExtractExpenses(ctx, "กาแฟ 60 บาท")
	require.NoError(t, err)

	_, err = g.ExtractText(ctx, ocr.Request{Files: []attachment.File{image()}})
	require.NoError(t, err)

	_, err = g.Transcribe(ctx, transcription.Request{Files: []attachment.File{audio()}})
	require.NoError(t, err)

	assert.Equal(t, int32(2), text.hits.Load())
	assert.Equal(t, int32(1), ocrUp.hits.Load())
	assert.Equal(t, int32(1), speechUp.hits.Load())

	// ask, expense, ocr and speech each count once.
	assert.Equal(t, 4.0, counterTotal(t, collector.Registry(), "gateway_provider_requests_total"))
}

func counterTotal(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestLive_ProviderFailure(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"backend exploded"}}`))
	}))
	defer down.Close()

	g, err := New(testConfig(down.URL, down.URL, down.URL, false), WithLogger(logger.NewNop()))
	require.NoError(t, err)

	_, err = g.ExtractExpenses(context.Background(), "กาแฟ 60 บาท")
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, errors.ErrCodeProvider, appErr.Code)
	assert.Equal(t, "API request failed: backend exploded", appErr.Message)
}

func TestHealth(t *testing.T) {
	ocrUp := newUpstream(t, `[]`)
	speechUp := newUpstream(t, `[]`)
	g, err := New(testConfig("http://localhost:1", ocrUp.URL, speechUp.URL, false), WithLogger(logger.NewNop()))
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, component.StatusHealthy, g.Health(ctx).Status)

	speechUp.health.Store(http.StatusServiceUnavailable)
	h := g.Health(ctx)
	assert.Equal(t, component.StatusDegraded, h.Status)
	assert.Contains(t, h.Message, transcription.Name)

	providers := g.ProviderHealth(ctx)
	require.Len(t, providers, 3)
	assert.Equal(t, []string{"gemini", "ocr", "speech"}, []string{providers[0].Name, providers[1].Name, providers[2].Name})
	assert.Equal(t, component.StatusUnhealthy, providers[2].Status)
}

func TestLifecycle(t *testing.T) {
	g, err := New(&config.GatewayConfig{MockMode: true}, WithLogger(logger.NewNop()))
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, ComponentName, g.Name())
	require.NoError(t, g.Start(ctx))
	assert.Contains(t, g.Describe().Details, "(mock)")
	assert.NoError(t, g.Stop(ctx))
}

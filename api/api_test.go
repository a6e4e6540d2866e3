package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/aigateway/attachment"
	"github.com/kbukum/aigateway/config"
	apperrors "github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/expense"
	"github.com/kbukum/aigateway/gateway"
	"github.com/kbukum/aigateway/logger"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/server"
	"github.com/kbukum/aigateway/transcription"
)

type fakeService struct {
	texts     []string
	ocrReqs   []ocr.Request
	speechReq []transcription.Request
	err       error
}

func (f *fakeService) ExtractExpenses(_ context.Context, text string) (expense.Result, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return expense.Result{}, f.err
	}
	return expense.Result{
		Expenses: []expense.Expense{{Item: "กาแฟ", Price: expense.Amount(60)}, {Item: "ค่าเดินทาง", Price: expense.NoPrice()}},
		Total:    60,
	}, nil
}

func (f *fakeService) ExtractText(_ context.Context, req ocr.Request) ([]ocr.FileResult, error) {
	f.ocrReqs = append(f.ocrReqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return []ocr.FileResult{{Filename: firstName(req.Files), Status: "success"}}, nil
}

func (f *fakeService) Transcribe(_ context.Context, req transcription.Request) ([]transcription.FileResult, error) {
	f.speechReq = append(f.speechReq, req)
	if f.err != nil {
		return nil, f.err
	}
	return []transcription.FileResult{{Filename: firstName(req.Files), Status: "success", Duration: 1.5}}, nil
}

func firstName(files []attachment.File) string {
	if len(files) == 0 {
		return ""
	}
	return files[0].Filename
}

func newHandler(t *testing.T, svc Service) http.Handler {
	t.Helper()
	srv, err := server.New(server.Config{Host: "127.0.0.1"}, logger.NewNop())
	require.NoError(t, err)
	NewHandler(svc, "v1").Register(srv.Engine())
	return srv.Handler()
}

type part struct {
	field, filename, contentType string
	data                         []byte
}

func multipartRequest(t *testing.T, path string, parts []part, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, _ = pw.Write(p.data)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var body map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	return rr, body
}

func jsonRequest(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestExtract(t *testing.T) {
	svc := &fakeService{}
	rr, body := do(newHandler(t, svc), jsonRequest("/api/expenses/v1/extract", `{"text":"  กาแฟ 60 บาท  "}`))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, float64(60), body["total"])
	expenses := body["expenses"].([]any)
	require.Len(t, expenses, 2)
	assert.Equal(t, "-", expenses[1].(map[string]any)["price"])
	assert.Equal(t, []string{"กาแฟ 60 บาท"}, svc.texts)
}

func TestExtractBodyValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing text", `{}`, "text"},
		{"empty text", `{"text":""}`, "text"},
		{"blank text", `{"text":"   "}`, "text"},
		{"wrong type", `{"text":42}`, "text"},
		{"too long", `{"text":"` + strings.Repeat("ก", expense.MaxTextLength+1) + `"}`, "text"},
		{"not json", `text=hello`, "body"},
		{"empty body", ``, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rr, body := do(newHandler(t, svc), jsonRequest("/api/expenses/v1/extract", tt.body))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "Validation failed", body["error"])
			assert.Equal(t, "Request body validation failed", body["message"])
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
			details := body["details"].(map[string]any)
			fields := details["fields"].([]any)
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.wantField, fields[0].(map[string]any)["field"])
			assert.Empty(t, svc.texts, "service must not be called")
		})
	}
}

func TestExtractUpstreamFailure(t *testing.T) {
	svc := &fakeService{err: apperrors.Parse("invalid character 'o'", "no json here")}
	rr, body := do(newHandler(t, svc), jsonRequest("/api/expenses/v1/extract", `{"text":"กาแฟ"}`))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "PARSE_ERROR", body["code"])
	assert.Equal(t, "no json here", body["details"].(map[string]any)["raw_response"])
}

func TestExtractTestRoute(t *testing.T) {
	svc := &fakeService{}
	rr, body := do(newHandler(t, svc), httptest.NewRequest(http.MethodGet, "/api/expenses/v1/extract/test", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, TestText, body["testText"])
	assert.Equal(t, "Test completed successfully", body["message"])
	assert.Contains(t, body, "expenses")
	assert.Equal(t, []string{TestText}, svc.texts)
}

func TestModuleHealth(t *testing.T) {
	h := newHandler(t, &fakeService{})
	tests := []struct {
		path, service string
		versioned     bool
	}{
		{"/api/expenses/v1/extract/health", ExtractService, false},
		{"/api/expenses/v1/ocr/health", OCRService, true},
		{"/api/expenses/v1/speech-to-text/health", SpeechService, true},
	}
	for _, tt := range tests {
		rr, body := do(h, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))
		require.Equal(t, http.StatusOK, rr.Code, tt.path)
		assert.Equal(t, "OK", body["status"])
		assert.Equal(t, tt.service, body["service"])
		assert.NotEmpty(t, body["timestamp"])
		if tt.versioned {
			assert.Equal(t, "1.0.0", body["version"])
			assert.NotEmpty(t, body["endpoints"])
		} else {
			assert.NotContains(t, body, "version")
		}
	}
}

func TestExtractText(t *testing.T) {
	svc := &fakeService{}
	req := multipartRequest(t, "/api/expenses/v1/ocr/extract",
		[]part{{"files", "receipt.jpg", "image/jpeg", []byte("jpg")}},
		map[string]string{"box_threshold": "0.25"})

	rr, body := do(newHandler(t, svc), req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Text extraction completed successfully", body["message"])
	require.Len(t, svc.ocrReqs, 1)
	got := svc.ocrReqs[0]
	require.Len(t, got.Files, 1)
	assert.Equal(t, "receipt.jpg", got.Files[0].Filename)
	assert.Equal(t, "image/jpeg", got.Files[0].MIMEType)
	require.NotNil(t, got.BoxThreshold)
	assert.Equal(t, 0.25, *got.BoxThreshold)
}

func TestExtractTextRejections(t *testing.T) {
	tests := []struct {
		name    string
		parts   []part
		fields  map[string]string
		message string
	}{
		{
			name:    "wrong type",
			parts:   []part{{"files", "notes.txt", "text/plain", []byte("hello")}},
			message: "Only image files and PDFs are allowed (notes.txt: text/plain)",
		},
		{
			name:    "threshold not a number",
			parts:   []part{{"files", "receipt.jpg", "image/jpeg", []byte("jpg")}},
			fields:  map[string]string{"box_threshold": "high"},
			message: "Box threshold must be a number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rr, body := do(newHandler(t, svc), multipartRequest(t, "/api/expenses/v1/ocr/extract", tt.parts, tt.fields))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.message, body["message"])
			assert.Empty(t, svc.ocrReqs)
		})
	}
}

func TestExtractTextPDFAccepted(t *testing.T) {
	svc := &fakeService{}
	req := multipartRequest(t, "/api/expenses/v1/ocr/extract",
		[]part{{"files", "bill.pdf", "application/pdf", []byte("%PDF-1.4")}}, nil)

	rr, _ := do(newHandler(t, svc), req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.ocrReqs, 1)
	assert.Nil(t, svc.ocrReqs[0].BoxThreshold)
}

func TestTranscribe(t *testing.T) {
	svc := &fakeService{}
	req := multipartRequest(t, "/api/expenses/v1/speech-to-text/transcribe",
		[]part{{"files", "voice_01.m4a", "audio/x-m4a", []byte("m4a")}}, nil)

	rr, body := do(newHandler(t, svc), req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Audio transcription completed successfully", body["message"])
	require.Len(t, svc.speechReq, 1)
	assert.Equal(t, "voice_01.m4a", svc.speechReq[0].Files[0].Filename)
}

func TestTranscribeRejectsImage(t *testing.T) {
	svc := &fakeService{}
	req := multipartRequest(t, "/api/expenses/v1/speech-to-text/transcribe",
		[]part{{"files", "receipt.jpg", "image/jpeg", []byte("jpg")}}, nil)

	rr, body := do(newHandler(t, svc), req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, body["message"], "Only audio files are allowed")
	assert.Empty(t, svc.speechReq)
}

func TestNotMultipartCarriesNoFiles(t *testing.T) {
	svc := &fakeService{}
	rr, _ := do(newHandler(t, svc), jsonRequest("/api/expenses/v1/speech-to-text/transcribe", `{}`))

	// Count checks belong to the provider; the fake accepts zero files.
	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, svc.speechReq, 1)
	assert.Empty(t, svc.speechReq[0].Files)
}

func TestPrefixFollowsVersion(t *testing.T) {
	assert.Equal(t, "/api/expenses/v2", NewHandler(&fakeService{}, "v2").Prefix())
	assert.Equal(t, "/api/expenses/v1", NewHandler(&fakeService{}, "").Prefix())
}

// The remaining tests run the real gateway in mock mode: no upstream is
// reachable, so every response comes from the embedded fixtures.

func mockGateway(t *testing.T) http.Handler {
	t.Helper()
	gw, err := gateway.New(&config.GatewayConfig{MockMode: true}, gateway.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close(context.Background()) })
	return newHandler(t, gw)
}

func TestMockGatewayExtract(t *testing.T) {
	rr, body := do(mockGateway(t), jsonRequest("/api/expenses/v1/extract", `{"text":"กาแฟ 60 บาท"}`))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, float64(85), body["total"])
	assert.Len(t, body["expenses"], 3)
}

func TestMockGatewayOCR(t *testing.T) {
	req := multipartRequest(t, "/api/expenses/v1/ocr/extract",
		[]part{{"files", "receipt.jpg", "image/jpeg", []byte("jpg")}}, nil)

	rr, body := do(mockGateway(t), req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "receipt.jpg", data[0].(map[string]any)["filename"])
}

func TestMockGatewayStillValidates(t *testing.T) {
	parts := make([]part, 6)
	for i := range parts {
		parts[i] = part{"files", "voice.m4a", "audio/x-m4a", []byte("m4a")}
	}

	rr, body := do(mockGateway(t), multipartRequest(t, "/api/expenses/v1/speech-to-text/transcribe", parts, nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestMockGatewayNoFiles(t *testing.T) {
	req := multipartRequest(t, "/api/expenses/v1/ocr/extract", nil, map[string]string{"box_threshold": "0.5"})

	rr, body := do(mockGateway(t), req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, body["message"], "At least one file is required")
}

package transcription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/aigateway/attachment"
	"github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/httpclient"
)

const voiceBody = `[{"filename":"voice_01.m4a","status":"success","result":[` +
	`{"speaker":"SPEAKER_00","transcript":"มื้อเช้ากินโจ๊กห้าสิบบาท","start_time":0.61,"end_time":6.93},` +
	`{"speaker":"SPEAKER_01","transcript":"มื้อเย็นกินสุกี้","start_time":7.29,"end_time":10.55}` +
	`],"duration":10.92}]`

func voice() attachment.File {
	data := []byte("m4a-bytes")
	return attachment.File{Filename: "voice_01.m4a", MIMEType: "audio/x-m4a", Size: int64(len(data)), Data: data}
}

func newProvider(t *testing.T, url string, timeout time.Duration) Provider {
	t.Helper()
	transport, err := httpclient.New(httpclient.Config{
		Name:    Name,
		BaseURL: url,
		Timeout: timeout,
		Auth:    httpclient.APIKeyAuth("stt-key"),
	})
	require.NoError(t, err)
	return New(transport)
}

func TestExecute_Success(t *testing.T) {
	var hits atomic.Int32
	var words, filenames []string
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		apiKey = r.Header.Get("X-API-Key")
		_ = r.ParseMultipartForm(1 << 20)
		words = r.MultipartForm.Value["boosting_words"]
		for _, fh := range r.MultipartForm.File["files"] {
			filenames = append(filenames, fh.Filename)
		}
		_, _ = w.Write([]byte(voiceBody))
	}))
	defer srv.Close()

	second := voice()
	second.Filename = "voice_02.m4a"
	results, err := newProvider(t, srv.URL, 0).Execute(context.Background(), Request{Files: []attachment.File{voice(), second}})
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "stt-key", apiKey)
	assert.Equal(t, BoostingWords, words)
	assert.Equal(t, []string{"voice_01.m4a", "voice_02.m4a"}, filenames)

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, 10.92, r.Duration)
	require.Len(t, r.Result, 2)
	assert.Equal(t, "SPEAKER_00", r.Result[0].Speaker)
	assert.Equal(t, "SPEAKER_01", r.Result[1].Speaker, "utterance order is preserved")
	assert.Equal(t, 7.29, r.Result[1].StartTime)
	assert.Equal(t, "มื้อเช้ากินโจ๊กห้าสิบบาท มื้อเย็นกินสุกี้", r.Text())
}

func TestBoostingWordsOrder(t *testing.T) {
	assert.Equal(t, []string{"บาท", "เช้า", "กลางวัน", "กลางคืน", "เทียง", "กิน", "จ่าย", "เย็น", "ซื่อ", "บิล"}, BoostingWords)
}

func TestExecute_Validation(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits.Add(1) }))
	defer srv.Close()
	p := newProvider(t, srv.URL, 0)

	_, err := p.Execute(context.Background(), Request{})
	require.True(t, errors.IsCode(err, errors.ErrCodeValidation), "%v", err)
	assert.Equal(t, "At least one file is required", err.(*errors.AppError).Message)

	files := []attachment.File{voice(), voice(), voice(), voice(), voice(), voice()}
	_, err = p.Execute(context.Background(), Request{Files: files})
	require.True(t, errors.IsCode(err, errors.ErrCodeValidation), "%v", err)
	assert.Equal(t, "Maximum 5 files allowed", err.(*errors.AppError).Message)

	_, err = p.Execute(context.Background(), Request{Files: files[:5]})
	assert.NotNil(t, err, "empty body is not a result list")
	assert.False(t, errors.IsCode(err, errors.ErrCodeValidation))

	assert.Equal(t, int32(1), hits.Load(), "only the valid request reached the server")
}

func TestExecute_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"model unavailable"}`))
	}))
	defer srv.Close()

	_, err := newProvider(t, srv.URL, 0).Execute(context.Background(), Request{Files: []attachment.File{voice()}})
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, errors.ErrCodeProvider, appErr.Code)
	assert.Equal(t, "Speech-to-text API error: model unavailable", appErr.Message)
}

func TestExecute_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { <-release }))
	defer srv.Close()
	defer close(release)

	_, err := newProvider(t, srv.URL, 50*time.Millisecond).Execute(context.Background(), Request{Files: []attachment.File{voice()}})
	require.True(t, errors.IsCode(err, errors.ErrCodeTransport), "%v", err)
	assert.Contains(t, err.Error(), "Speech-to-text API error: ")
}

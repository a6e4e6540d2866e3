package gateway

import (
	"embed"
	"net/http"

	"github.com/kbukum/aigateway/httpclient"
)

// Kind names one of the three upstream providers.
type Kind string

const (
	KindText   Kind = "text"
	KindOCR    Kind = "ocr"
	KindSpeech Kind = "speech"
)

// Kinds lists every provider kind.
var Kinds = []Kind{KindText, KindOCR, KindSpeech}

//go:embed fixtures/*.json
var fixtures embed.FS

// Substitute returns the canned raw response for kind, as the upstream
// would send it. Every call returns a fresh copy with identical bytes.
func Substitute(kind Kind) (*httpclient.Response, bool) {
	body, err := fixtures.ReadFile("fixtures/" + string(kind) + ".json")
	if err != nil {
		return nil, false
	}
	return &httpclient.Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}, true
}

// mockTransport answers every request with the fixture for kind.
func mockTransport(kind Kind) func(httpclient.Request) *httpclient.Response {
	return func(httpclient.Request) *httpclient.Response {
		resp, _ := Substitute(kind)
		return resp
	}
}

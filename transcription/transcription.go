package transcription

import (
	"context"
	"net/http"

	"github.com/kbukum/aigateway/attachment"
	"github.com/kbukum/aigateway/httpclient"
	"github.com/kbukum/aigateway/observability"
	"github.com/kbukum/aigateway/provider"
)

const (
	// Name identifies the provider in logs, metrics and health output.
	Name = "speech"
	// ErrorPrefix starts every transport and provider error message.
	ErrorPrefix = "Speech-to-text API error: "
	// PredictPath is the inference endpoint.
	PredictPath = "/predict"
)

// BoostingWords biases recognition toward expense vocabulary. They are sent
// as repeated boosting_words fields, in this order, with every request.
var BoostingWords = []string{"บาท", "เช้า", "กลางวัน", "กลางคืน", "เทียง", "กิน", "จ่าย", "เย็น", "ซื่อ", "บิล"}

// Provider is the speech variant of the gateway provider.
type Provider = provider.RequestResponse[Request, []FileResult]

// New composes the speech provider on top of transport.
func New(transport provider.RequestResponse[httpclient.Request, *httpclient.Response]) Provider {
	return provider.Adapt(
		httpclient.WithAppErrors(Name, ErrorPrefix)(transport),
		Name,
		BuildRequest,
		Normalize,
	)
}

// BuildRequest validates the files and encodes them with the boosting words.
func BuildRequest(ctx context.Context, req Request) (httpclient.Request, error) {
	if err := attachment.Validate(req.Files); err != nil {
		return httpclient.Request{}, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrFileCount, len(req.Files))

	body := attachment.Multipart("files", req.Files).
		AddFields("boosting_words", BoostingWords...)
	return httpclient.Request{Method: http.MethodPost, Path: PredictPath, Body: body}, nil
}

// Normalize decodes the service's array of file results.
func Normalize(resp *httpclient.Response) ([]FileResult, error) {
	return httpclient.DecodeList[FileResult](resp)
}

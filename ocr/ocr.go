// Package ocr extracts text from images and PDFs through the OCR
// inference service.
package ocr

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kbukum/aigateway/attachment"
	"github.com/kbukum/aigateway/httpclient"
	"github.com/kbukum/aigateway/observability"
	"github.com/kbukum/aigateway/provider"
	"github.com/kbukum/aigateway/validation"
)

const (
	// Name identifies the provider in logs, metrics and health output.
	Name = "ocr"
	// ErrorPrefix starts every transport and provider error message.
	ErrorPrefix = "OCR API error: "
	// PredictPath is the inference endpoint.
	PredictPath = "/predict"
	// DefaultBoxThreshold is what the service applies when none is sent.
	DefaultBoxThreshold = 0.4
)

// Request is one OCR call: up to five files plus an optional detection
// threshold in [0,1].
type Request struct {
	Files        []attachment.File
	BoxThreshold *float64
}

// Threshold returns a pointer for Request.BoxThreshold.
func Threshold(v float64) *float64 { return &v }

// TextBox is one detected text region.
type TextBox struct {
	Text string `json:"text"`
	BBox *BBox  `json:"bbox,omitempty"`
}

// PageResult is the text found on one page.
type PageResult struct {
	Page      int       `json:"page"`
	Data      []TextBox `json:"data"`
	FullText  string    `json:"full_text"`
	ImageSize ImageSize `json:"image_size"`
}

// FileResult is the outcome for one uploaded file.
type FileResult struct {
	Filename string       `json:"filename"`
	Status   string       `json:"status"`
	Result   []PageResult `json:"result"`
}

// Provider is the OCR variant of the gateway provider.
type Provider = provider.RequestResponse[Request, []FileResult]

// New composes the OCR provider on top of transport.
func New(transport provider.RequestResponse[httpclient.Request, *httpclient.Response]) Provider {
	return provider.Adapt(
		httpclient.WithAppErrors(Name, ErrorPrefix)(transport),
		Name,
		BuildRequest,
		Normalize,
	)
}

// BuildRequest validates req and encodes it as a multipart form with the
// files under "files". box_threshold is only sent when set.
func BuildRequest(ctx context.Context, req Request) (httpclient.Request, error) {
	v := attachment.Rules(validation.New(), req.Files)
	if req.BoxThreshold != nil {
		v.FloatRange("box_threshold", *req.BoxThreshold, 0, 1)
	}
	if err := v.Err(); err != nil {
		return httpclient.Request{}, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrFileCount, len(req.Files))

	body := attachment.Multipart("files", req.Files)
	if req.BoxThreshold != nil {
		body.AddField("box_threshold", strconv.FormatFloat(*req.BoxThreshold, 'f', -1, 64))
	}
	return httpclient.Request{Method: http.MethodPost, Path: PredictPath, Body: body}, nil
}

// Normalize decodes the service's array of file results.
func Normalize(resp *httpclient.Response) ([]FileResult, error) {
	return httpclient.DecodeList[FileResult](resp)
}

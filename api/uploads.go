package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/aigateway/attachment"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/server"
	"github.com/kbukum/aigateway/transcription"
	"github.com/kbukum/aigateway/validation"
)

const (
	filesField     = "files"
	thresholdField = "box_threshold"

	ocrTypeMessage    = "Only image files and PDFs are allowed"
	speechTypeMessage = "Only audio files are allowed"
)

// ExtractText handles POST /ocr/extract: multipart "files" plus an optional
// "box_threshold" in [0, 1].
func (h *Handler) ExtractText(c *gin.Context) {
	files, err := readFiles(c, attachment.AcceptOCR, ocrTypeMessage)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	threshold, err := parseThreshold(c.PostForm(thresholdField))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	results, err := h.svc.ExtractText(c.Request.Context(), ocr.Request{Files: files, BoxThreshold: threshold})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondSuccess(c, results, "Text extraction completed successfully")
}

// Transcribe handles POST /speech-to-text/transcribe: multipart "files".
func (h *Handler) Transcribe(c *gin.Context) {
	files, err := readFiles(c, attachment.AcceptSpeech, speechTypeMessage)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	results, err := h.svc.Transcribe(c.Request.Context(), transcription.Request{Files: files})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondSuccess(c, results, "Audio transcription completed successfully")
}

// readFiles loads the uploaded files and rejects unaccepted types. Count
// and size limits are left to the provider so that the CLI gets the same
// checks. A request that is not multipart carries no files.
func readFiles(c *gin.Context, accept attachment.Accept, message string) ([]attachment.File, error) {
	form, err := c.MultipartForm()
	switch {
	case err == nil:
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		return nil, nil
	case isBodyTooLarge(err):
		return nil, err
	default:
		return nil, validation.New().Custom(false, filesField, "Malformed multipart body: "+err.Error()).Err()
	}

	var headers []*multipart.FileHeader
	if form != nil {
		headers = form.File[filesField]
	}
	files, err := attachment.FromFileHeaders(headers)
	if err != nil {
		return nil, err
	}
	if err := attachment.CheckTypes(files, accept, message); err != nil {
		return nil, err
	}
	return files, nil
}

// parseThreshold reads box_threshold. Blank means the provider default;
// the range itself is checked by the OCR provider.
func parseThreshold(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, validation.New().Custom(false, thresholdField, "Box threshold must be a number").Err()
	}
	return ocr.Threshold(v), nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

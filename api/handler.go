package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/aigateway/expense"
	"github.com/kbukum/aigateway/ocr"
	"github.com/kbukum/aigateway/server/endpoint"
	"github.com/kbukum/aigateway/transcription"
)

// Service names reported by the per-module health routes.
const (
	ExtractService = "Expense Extraction Service"
	OCRService     = "OCR Service"
	SpeechService  = "Speech-to-Text Service"

	moduleVersion = "1.0.0"
)

// Service is the gateway surface the handlers need.
type Service interface {
	ExtractExpenses(ctx context.Context, text string) (expense.Result, error)
	ExtractText(ctx context.Context, req ocr.Request) ([]ocr.FileResult, error)
	Transcribe(ctx context.Context, req transcription.Request) ([]transcription.FileResult, error)
}

// Handler serves the expense API.
type Handler struct {
	svc    Service
	prefix string
}

// NewHandler creates a handler for the given API version, e.g. "v1".
func NewHandler(svc Service, apiVersion string) *Handler {
	if apiVersion == "" {
		apiVersion = "v1"
	}
	return &Handler{svc: svc, prefix: "/api/expenses/" + apiVersion}
}

// Prefix is the route group every endpoint lives under.
func (h *Handler) Prefix() string { return h.prefix }

// Register mounts the endpoints on r.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group(h.prefix)

	g.POST("/extract", h.Extract)
	g.GET("/extract/test", h.ExtractTest)
	g.GET("/extract/health", h.health(ExtractService, false, nil))

	g.POST("/ocr/extract", h.ExtractText)
	g.GET("/ocr/health", h.health(OCRService, true, map[string]string{
		"extract": "POST " + h.prefix + "/ocr/extract",
		"health":  "GET " + h.prefix + "/ocr/health",
	}))

	g.POST("/speech-to-text/transcribe", h.Transcribe)
	g.GET("/speech-to-text/health", h.health(SpeechService, true, map[string]string{
		"transcribe": "POST " + h.prefix + "/speech-to-text/transcribe",
		"health":     "GET " + h.prefix + "/speech-to-text/health",
	}))
}

// health reports that the module is serving. It does not probe upstream;
// /health covers that.
func (h *Handler) health(service string, versioned bool, endpoints map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":    "OK",
			"service":   service,
			"timestamp": endpoint.Timestamp(),
		}
		if versioned {
			body["version"] = moduleVersion
		}
		if endpoints != nil {
			body["endpoints"] = endpoints
		}
		c.JSON(http.StatusOK, body)
	}
}

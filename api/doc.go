// Package api serves the expense endpoints under /api/expenses/{version}:
// text extraction, OCR and speech transcription, each with its own health
// route. Handlers decode and check the request, call the gateway and
// render either the success body or the error envelope.
package api

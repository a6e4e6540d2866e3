package transcription

import (
	"strings"

	"github.com/kbukum/aigateway/attachment"
)

// Request is one transcription call: up to five audio files.
type Request struct {
	Files []attachment.File
}

// Utterance is one speaker turn, times in seconds from the start of the file.
type Utterance struct {
	Speaker    string  `json:"speaker"`
	Transcript string  `json:"transcript"`
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
}

// FileResult is the transcript of one uploaded file. Utterances keep the
// order the service returned them in.
type FileResult struct {
	Filename string      `json:"filename"`
	Status   string      `json:"status"`
	Result   []Utterance `json:"result"`
	Duration float64     `json:"duration"`
}

// Text joins the utterances of a file with single spaces.
func (r FileResult) Text() string {
	parts := make([]string, len(r.Result))
	for i, u := range r.Result {
		parts[i] = u.Transcript
	}
	return strings.Join(parts, " ")
}

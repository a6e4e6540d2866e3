// Package gemini is the llm dialect for the Google Generative Language API
// (generateContent). Importing it registers the "gemini" dialect.
package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbukum/aigateway/llm"
)

// DialectName is the name the dialect registers under.
const DialectName = "gemini"

// NoResponse is returned as the content when the model produced no candidate.
const NoResponse = "No response generated"

func init() {
	llm.RegisterDialect(DialectName, Dialect{})
}

// Dialect maps completion requests to generateContent calls.
// The API key travels as the "key" query parameter, set on the transport.
type Dialect struct{}

var _ llm.Dialect = Dialect{}

func (Dialect) Name() string { return DialectName }

func (Dialect) ChatPath(model string) string {
	return "/models/" + model + ":generateContent"
}

func (Dialect) HealthPath() string { return "" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// BuildRequest produces {contents:[{parts:[{text}]}]}. Roles are only sent
// for multi-turn conversations; "assistant" becomes Gemini's "model".
func (Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("gemini: at least one message is required")
	}

	body := generateRequest{Contents: make([]content, 0, len(req.Messages))}
	multiTurn := len(req.Messages) > 1
	for _, m := range req.Messages {
		c := content{Parts: []part{{Text: m.Content}}}
		if multiTurn {
			c.Role = role(m.Role)
		}
		body.Contents = append(body.Contents, c)
	}

	if req.SystemPrompt != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		body.GenerationConfig = &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}
	return body, nil
}

func role(r string) string {
	switch strings.ToLower(r) {
	case "assistant", "model":
		return "model"
	default:
		return "user"
	}
}

// ParseResponse takes the first part of the first candidate. A response
// without one is not an error: the content becomes NoResponse.
func (Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}

	text := NoResponse
	if len(resp.Candidates) > 0 {
		if c := resp.Candidates[0].Content; c != nil && len(c.Parts) > 0 {
			text = c.Parts[0].Text
		}
	}

	return &llm.CompletionResponse{
		Content: text,
		Model:   resp.ModelVersion,
		Usage: llm.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

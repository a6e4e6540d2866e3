package llm

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// CompletionRequest is the dialect-independent input to a text model.
type CompletionRequest struct {
	// Model overrides the adapter's default model.
	Model string `json:"model,omitempty"`
	// Messages is the conversation history.
	Messages []Message `json:"messages"`
	// SystemPrompt is sent as the dialect's system instruction, if it has one.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64 `json:"temperature,omitempty"`
	// MaxTokens limits the response length. Zero leaves the provider default.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse is the dialect-independent output of a text model.
type CompletionResponse struct {
	// Content is the generated text.
	Content string `json:"content"`
	// Model is the model that produced the response.
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

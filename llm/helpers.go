package llm

import (
	"context"

	"github.com/kbukum/aigateway/provider"
)

// Complete sends system and user prompts and returns the text response.
// It accepts any RequestResponse, so middleware-wrapped adapters work too.
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{UserMessage(user)},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

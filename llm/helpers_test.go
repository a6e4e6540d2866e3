package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/aigateway/provider"
)

// Verify helper functions accept the provider.RequestResponse interface.
var _ provider.RequestResponse[CompletionRequest, CompletionResponse] = (*Adapter)(nil)

func TestComplete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": "The answer is 42.",
			"model":   "test",
		})
	}))
	defer srv.Close()

	a, err := NewWithDialect(newTransport(t, srv.URL), &mockDialect{}, Config{Model: "test"})
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	result, err := Complete(context.Background(), a, "You are helpful.", "What is the answer?")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if result != "The answer is 42." {
		t.Errorf("result = %q, want %q", result, "The answer is 42.")
	}

	msgs, _ := got["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", got["messages"])
	}
	if m := msgs[0].(map[string]any); m["role"] != "user" || m["content"] != "What is the answer?" {
		t.Errorf("unexpected message %v", m)
	}
}

func TestComplete_WrappedProvider(t *testing.T) {
	p := provider.Func("echo", func(_ context.Context, req CompletionRequest) (CompletionResponse, error) {
		return CompletionResponse{Content: req.SystemPrompt + "|" + req.Messages[0].Content}, nil
	})

	result, err := Complete(context.Background(), p, "sys", "user")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if result != "sys|user" {
		t.Errorf("result = %q", result)
	}
}

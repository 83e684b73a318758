package llm

import (
	"context"
	"fmt"
)

type Message struct {
	Role    string
	Content string
}

// Params are the per-request generation settings taken from the user's session.
// An empty ModelID selects the provider's base model.
type Params struct {
	ModelID     string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

type Response struct {
	Content string
	Model   string
	Tokens  int
}

type Client interface {
	Generate(ctx context.Context, messages []Message, params Params) (Response, error)
}

// APIError is returned when the inference endpoint answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inference API error: %d - %s", e.StatusCode, e.Message)
}

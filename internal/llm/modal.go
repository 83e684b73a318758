package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ModalClient talks to a Modal-hosted inference endpoint serving finetuned models.
type ModalClient struct {
	baseURL string
	httpc   *http.Client
}

type modalRequest struct {
	Prompt      string  `json:"prompt"`
	ModelID     string  `json:"modelId,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	TopP        float64 `json:"top_p"`
}

type modalResponse struct {
	Text   string `json:"text"`
	Tokens int    `json:"tokens"`
}

func NewModal(baseURL string, timeout time.Duration) *ModalClient {
	return &ModalClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *ModalClient) Generate(ctx context.Context, messages []Message, params Params) (Response, error) {
	payload := modalRequest{
		Prompt:      flattenPrompt(messages),
		ModelID:     params.ModelID,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		TopP:        params.TopP,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inference", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("call inference endpoint: %w", err)
	}
	defer func(b io.ReadCloser) {
		_ = b.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Response{}, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(errText))}
	}

	var out modalResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode inference response: %w", err)
	}

	model := params.ModelID
	if model == "" {
		model = "base"
	}
	return Response{Content: out.Text, Model: model, Tokens: out.Tokens}, nil
}

// flattenPrompt folds the conversation into a single transcript, the shape the
// Modal endpoint expects. Order is chronological; the last line is always the
// pending user turn.
func flattenPrompt(messages []Message) string {
	if len(messages) == 1 {
		return messages[0].Content
	}
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch m.Role {
		case "assistant":
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

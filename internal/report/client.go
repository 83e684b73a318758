package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vibetune-bot/internal/history"
)

// Report is one conversation submission to the web app. It is built at
// /report time, sent once and discarded; nothing is persisted locally.
type Report struct {
	TelegramUserID int64  `json:"telegramUserId"`
	Username       string `json:"username"`
	BotUsername    string `json:"botUsername"`
	ReportText     string `json:"reportText"`
	History        []Turn `json:"conversationHistory"`
}

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// APIError is returned when the web app answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("report API error: %d - %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// FromSnapshot converts a conversation snapshot into the wire shape.
func FromSnapshot(entries []history.Entry) []Turn {
	turns := make([]Turn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, Turn{Role: e.Role, Content: e.Content})
	}
	return turns
}

// Submit posts the report once. The caller decides what to do with the
// conversation afterwards: it is cleared only on success.
func (c *Client) Submit(ctx context.Context, r Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reports", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call report endpoint: %w", err)
	}
	defer func(b io.ReadCloser) {
		_ = b.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(errText))}
	}
	return nil
}

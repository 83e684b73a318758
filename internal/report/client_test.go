package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vibetune-bot/internal/history"
)

func TestSubmitPostsReportBody(t *testing.T) {
	var got Report
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/reports" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	r := Report{
		TelegramUserID: 42,
		Username:       "alice",
		BotUsername:    "vibetune_bot",
		ReportText:     "model keeps repeating itself",
		History: FromSnapshot([]history.Entry{
			{Role: history.RoleUser, Content: "hi"},
			{Role: history.RoleAssistant, Content: "hi hi hi"},
		}),
	}
	if err := c.Submit(context.Background(), r); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.TelegramUserID != 42 || got.Username != "alice" || got.BotUsername != "vibetune_bot" {
		t.Fatalf("identity fields wrong: %+v", got)
	}
	if got.ReportText != "model keeps repeating itself" {
		t.Fatalf("report text wrong: %q", got.ReportText)
	}
	if len(got.History) != 2 || got.History[0].Role != "user" || got.History[1].Content != "hi hi hi" {
		t.Fatalf("history wrong: %+v", got.History)
	}
}

func TestSubmitNon2xxReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	err := c.Submit(context.Background(), Report{TelegramUserID: 1})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "invalid token" {
		t.Fatalf("unexpected error payload: %+v", apiErr)
	}
}

func TestSubmitConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	if err := c.Submit(context.Background(), Report{}); err == nil {
		t.Fatalf("expected transport error")
	}
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestModalGenerateSendsContract(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inference" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "generated reply", "tokens": 17})
	}))
	defer srv.Close()

	c := NewModal(srv.URL, 30*time.Second)
	params := Params{ModelID: "training-12345", Temperature: 0.7, MaxTokens: 250, TopP: 0.9}
	resp, err := c.Generate(context.Background(), []Message{{Role: "user", Content: "hello"}}, params)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Content != "generated reply" || resp.Tokens != 17 || resp.Model != "training-12345" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got["prompt"] != "hello" || got["modelId"] != "training-12345" {
		t.Fatalf("payload wrong: %+v", got)
	}
	if got["temperature"] != 0.7 || got["max_tokens"] != float64(250) || got["top_p"] != 0.9 {
		t.Fatalf("generation params wrong: %+v", got)
	}
}

func TestModalGenerateOmitsModelIDForBase(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "ok", "tokens": 1})
	}))
	defer srv.Close()

	c := NewModal(srv.URL, 30*time.Second)
	resp, err := c.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}}, Params{Temperature: 0.7, MaxTokens: 250, TopP: 0.9})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, present := got["modelId"]; present {
		t.Fatalf("modelId must be omitted for the base model: %+v", got)
	}
	if resp.Model != "base" {
		t.Fatalf("expected base model label, got %q", resp.Model)
	}
}

func TestModalGenerateNon2xxReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewModal(srv.URL, 30*time.Second)
	_, err := c.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}}, Params{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "model not found" {
		t.Fatalf("unexpected error payload: %+v", apiErr)
	}
}

func TestFlattenPromptTranscriptOrder(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}
	want := "User: first\nAssistant: second\nUser: third"
	if got := flattenPrompt(msgs); got != want {
		t.Fatalf("flatten mismatch:\n got %q\nwant %q", got, want)
	}
	// Single pending turn goes through verbatim
	if got := flattenPrompt([]Message{{Role: "user", Content: "solo"}}); got != "solo" {
		t.Fatalf("single message not verbatim: %q", got)
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorderAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	r, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	ev1 := Event{Timestamp: time.Now().UTC().Truncate(time.Second), UserID: 1, ModelID: "training-1", UserMessage: "hi", AssistantResponse: "hello"}
	ev2 := Event{Timestamp: ev1.Timestamp.Add(time.Minute), UserID: 2, UserMessage: "foo", AssistantResponse: "bar"}
	if err := r.AppendInteraction(ev1); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := r.AppendInteraction(ev2); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := r.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].UserID != 1 || events[0].ModelID != "training-1" || events[0].AssistantResponse != "hello" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].UserID != 2 || events[1].ModelID != "" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestFileRecorderSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	r, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	if err := r.AppendInteraction(Event{UserID: 7, UserMessage: "ok"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	// Corrupt the log by hand
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("not json\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = f.Close()

	events, err := r.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 1 || events[0].UserID != 7 {
		t.Fatalf("unexpected events: %+v", events)
	}
}

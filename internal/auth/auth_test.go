package auth

import "testing"

func TestEmptyAllowlistIsOpen(t *testing.T) {
	s := New(nil)
	if !s.Open() {
		t.Fatalf("empty allowlist should be open")
	}
	if !s.IsAllowed(12345) {
		t.Fatalf("open service rejected a user")
	}
}

func TestAllowlistRestricts(t *testing.T) {
	s := New([]int64{1, 2})
	if s.Open() {
		t.Fatalf("configured allowlist reported open")
	}
	if !s.IsAllowed(1) || !s.IsAllowed(2) {
		t.Fatalf("listed users rejected")
	}
	if s.IsAllowed(3) {
		t.Fatalf("unlisted user allowed")
	}
}

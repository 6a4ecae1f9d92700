package main

import "testing"

func TestHashTokenUsage(t *testing.T) {
	if code := hashToken(nil); code != 2 {
		t.Fatalf("expected usage exit code 2, got %d", code)
	}
	if code := hashToken([]string{""}); code != 2 {
		t.Fatalf("expected usage exit code 2 for empty token, got %d", code)
	}
	if code := hashToken([]string{"a", "b"}); code != 2 {
		t.Fatalf("expected usage exit code 2 for extra args, got %d", code)
	}
}

func TestHashTokenSucceeds(t *testing.T) {
	if code := hashToken([]string{"admin"}); code != 0 {
		t.Fatalf("expected success, got %d", code)
	}
}

package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExecute(t *testing.T) {
	e := New()
	if !e.Available("sh") {
		t.Skip("sh not available")
	}

	out, err := e.Execute(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello\n" {
		t.Errorf("Execute() = %q, want %q", out, "hello\n")
	}

	_, err = e.Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil || !strings.Contains(err.Error(), "stderr: boom") {
		t.Errorf("Execute(failing) error = %v, want stderr in message", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	e := New()
	if !e.Available("sleep") {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := e.Execute(ctx, "sleep", "5")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Execute() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestAvailable(t *testing.T) {
	if New().Available("definitely-not-a-real-binary-xyz") {
		t.Error("Available() = true for a missing binary")
	}
}

func TestLastLines(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"a\nb\nc\n", 2, "b\nc"},
		{"only", 5, "only"},
		{"  \n", 3, ""},
	}
	for _, tt := range tests {
		if got := lastLines(tt.in, tt.n); got != tt.want {
			t.Errorf("lastLines(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

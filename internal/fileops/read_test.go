package fileops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeNumberedLines(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %04d\n", i)
	}
	path := filepath.Join(t.TempDir(), "lines.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestHead(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()
	path := writeNumberedLines(t, 100)

	got, err := engine.Head(ctx, path, 3)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	want := "line 0001\nline 0002\nline 0003"
	if got != want {
		t.Errorf("Head = %q, want %q", got, want)
	}
}

func TestHeadFewerLinesThanRequested(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()
	path := writeNumberedLines(t, 2)

	got, err := engine.Head(ctx, path, 10)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if got != "line 0001\nline 0002" {
		t.Errorf("Head = %q", got)
	}
}

func TestTail(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	// 500 numbered lines of 10 bytes each span several 1024-byte chunks, so
	// the backwards reader has to stitch lines across chunk boundaries.
	path := writeNumberedLines(t, 500)

	got, err := engine.Tail(ctx, path, 3)
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	want := "line 0498\nline 0499\nline 0500"
	if got != want {
		t.Errorf("Tail = %q, want %q", got, want)
	}
}

func TestTailWholeFileWhenShort(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()
	path := writeNumberedLines(t, 2)

	got, err := engine.Tail(ctx, path, 50)
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if !strings.Contains(got, "line 0001") || !strings.Contains(got, "line 0002") {
		t.Errorf("Tail = %q, want both lines present", got)
	}
}

func TestTailEmptyFile(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	got, err := engine.Tail(ctx, path, 5)
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if got != "" {
		t.Errorf("Tail of empty file = %q, want empty", got)
	}
}

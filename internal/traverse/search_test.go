package traverse

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSearchRecursiveGlob(t *testing.T) {
	dir := realPath(t, t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755); err != nil {
		t.Fatalf("Failed to create test directories: %v", err)
	}
	mustWrite(t, filepath.Join(dir, "top.txt"), 1)
	mustWrite(t, filepath.Join(dir, "a", "mid.txt"), 1)
	mustWrite(t, filepath.Join(dir, "a", "b", "deep.txt"), 1)
	mustWrite(t, filepath.Join(dir, "a", "noise.log"), 1)

	engine := newTestEngine(t, dir)
	got, err := engine.Search(context.Background(), dir, "**/*.txt", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// Depth-first in name order: the walk descends into a/b before reaching
	// a's later siblings.
	want := []string{
		filepath.Join(dir, "a", "b", "deep.txt"),
		filepath.Join(dir, "a", "mid.txt"),
		filepath.Join(dir, "top.txt"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearchStarDoesNotCrossSeparators(t *testing.T) {
	dir := realPath(t, t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	mustWrite(t, filepath.Join(dir, "top.txt"), 1)
	mustWrite(t, filepath.Join(dir, "sub", "nested.txt"), 1)

	engine := newTestEngine(t, dir)
	got, err := engine.Search(context.Background(), dir, "*.txt", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{filepath.Join(dir, "top.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search = %v, want only the top-level match", got)
	}
}

func TestSearchQuestionMark(t *testing.T) {
	dir := realPath(t, t.TempDir())
	mustWrite(t, filepath.Join(dir, "a1.txt"), 1)
	mustWrite(t, filepath.Join(dir, "a22.txt"), 1)

	engine := newTestEngine(t, dir)
	got, err := engine.Search(context.Background(), dir, "a?.txt", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{filepath.Join(dir, "a1.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearchPrunesExcludedSubtree(t *testing.T) {
	dir := realPath(t, t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "drafts", "old"), 0o755); err != nil {
		t.Fatalf("Failed to create test directories: %v", err)
	}
	mustWrite(t, filepath.Join(dir, "final.txt"), 1)
	mustWrite(t, filepath.Join(dir, "drafts", "wip.txt"), 1)
	mustWrite(t, filepath.Join(dir, "drafts", "old", "v1.txt"), 1)

	engine := newTestEngine(t, dir)
	got, err := engine.Search(context.Background(), dir, "**/*.txt", []string{"drafts"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{filepath.Join(dir, "final.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search = %v, want the excluded subtree pruned", got)
	}
}

func TestSearchMatchesDirectories(t *testing.T) {
	dir := realPath(t, t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "cache"), 0o755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	engine := newTestEngine(t, dir)
	got, err := engine.Search(context.Background(), dir, "cache", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []string{filepath.Join(dir, "cache")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search = %v, want the directory itself", got)
	}
}

func TestSearchNoMatches(t *testing.T) {
	dir := realPath(t, t.TempDir())
	mustWrite(t, filepath.Join(dir, "a.log"), 1)

	engine := newTestEngine(t, dir)
	got, err := engine.Search(context.Background(), dir, "**/*.txt", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Search = %v, want no matches", got)
	}
}

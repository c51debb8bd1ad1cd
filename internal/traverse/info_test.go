package traverse

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInfoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	mustWrite(t, path, 1234)

	engine := newTestEngine(t, dir)
	info, err := engine.Info(context.Background(), path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}

	if info.Size != 1234 {
		t.Errorf("Size = %d, want 1234", info.Size)
	}
	if info.IsDirectory {
		t.Error("IsDirectory = true for a regular file")
	}
	if time.Since(info.Modified) > time.Minute {
		t.Errorf("Modified = %v, expected a recent time", info.Modified)
	}
}

func TestInfoDirectory(t *testing.T) {
	dir := t.TempDir()
	engine := newTestEngine(t, dir)

	info, err := engine.Info(context.Background(), dir)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if !info.IsDirectory {
		t.Error("IsDirectory = false for a directory")
	}
}

func TestFileInfoFormat(t *testing.T) {
	fi := FileInfo{
		Size:        2048,
		Modified:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		IsDirectory: false,
		Permissions: "644",
	}
	out := fi.Format("/srv/data/report.txt")

	for _, want := range []string{
		"path: /srv/data/report.txt",
		"size: 2.00 KB (2048 bytes)",
		"type: file",
		"permissions: 644",
		"modified: 2026-03-14T09:26:53Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format output missing %q:\n%s", want, out)
		}
	}
}

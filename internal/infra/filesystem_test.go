package infra

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFilesystemRepository(t *testing.T) {
	fsRepo := NewOSFilesystemRepository()
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("WriteReadStat", func(t *testing.T) {
		path := filepath.Join(dir, "file.txt")
		if err := fsRepo.WriteFile(ctx, path, []byte("content"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		data, err := fsRepo.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != "content" {
			t.Errorf("content = %q", data)
		}
		info, err := fsRepo.Stat(ctx, path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if info.Size() != 7 {
			t.Errorf("Size = %d, want 7", info.Size())
		}
	})

	t.Run("ExistsAndIsDir", func(t *testing.T) {
		sub := filepath.Join(dir, "a", "b")
		if err := fsRepo.MkdirAll(ctx, sub, 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		exists, err := fsRepo.Exists(ctx, sub)
		if err != nil || !exists {
			t.Errorf("Exists = %v, %v, want true", exists, err)
		}
		isDir, err := fsRepo.IsDir(ctx, sub)
		if err != nil || !isDir {
			t.Errorf("IsDir = %v, %v, want true", isDir, err)
		}
		exists, err = fsRepo.Exists(ctx, filepath.Join(dir, "ghost"))
		if err != nil || exists {
			t.Errorf("Exists for missing path = %v, %v, want false", exists, err)
		}
	})

	t.Run("LstatDoesNotFollow", func(t *testing.T) {
		target := filepath.Join(dir, "target.txt")
		if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		link := filepath.Join(dir, "link.txt")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		info, err := fsRepo.Lstat(ctx, link)
		if err != nil {
			t.Fatalf("Lstat failed: %v", err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			t.Error("Lstat followed the symlink")
		}
		real, err := fsRepo.EvalSymlinks(ctx, link)
		if err != nil {
			t.Fatalf("EvalSymlinks failed: %v", err)
		}
		wantReal, _ := filepath.EvalSymlinks(target)
		if real != wantReal {
			t.Errorf("EvalSymlinks = %q, want %q", real, wantReal)
		}
	})

	t.Run("RenameAndRemove", func(t *testing.T) {
		src := filepath.Join(dir, "src.txt")
		dst := filepath.Join(dir, "dst.txt")
		if err := fsRepo.WriteFile(ctx, src, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := fsRepo.Rename(ctx, src, dst); err != nil {
			t.Fatalf("Rename failed: %v", err)
		}
		if err := fsRepo.Remove(ctx, dst); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if exists, _ := fsRepo.Exists(ctx, dst); exists {
			t.Error("file still exists after Remove")
		}
	})
}

package infra

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fpt/scopefs/internal/repository"
)

// OSFilesystemRepository implements repository.FilesystemRepository using the
// os package. This is the only implementation used outside tests.
type OSFilesystemRepository struct{}

// NewOSFilesystemRepository creates a new OS-based filesystem repository
func NewOSFilesystemRepository() repository.FilesystemRepository {
	return &OSFilesystemRepository{}
}

// OpenFile opens a file for reading
func (r *OSFilesystemRepository) OpenFile(ctx context.Context, path string) (repository.File, error) {
	return os.Open(path)
}

// ReadFile reads the contents of a file
func (r *OSFilesystemRepository) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file
func (r *OSFilesystemRepository) WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Stat returns file information, following symlinks
func (r *OSFilesystemRepository) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file information without following a trailing symlink
func (r *OSFilesystemRepository) Lstat(ctx context.Context, path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// ReadDir reads directory contents
func (r *OSFilesystemRepository) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// MkdirAll creates a directory along with any missing parents
func (r *OSFilesystemRepository) MkdirAll(ctx context.Context, path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// EvalSymlinks resolves path to its real, symlink-free form
func (r *OSFilesystemRepository) EvalSymlinks(ctx context.Context, path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Rename renames (moves) a file or directory
func (r *OSFilesystemRepository) Rename(ctx context.Context, oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Remove removes a file or empty directory
func (r *OSFilesystemRepository) Remove(ctx context.Context, path string) error {
	return os.Remove(path)
}

// Exists checks if a file or directory exists
func (r *OSFilesystemRepository) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir checks if path is a directory
func (r *OSFilesystemRepository) IsDir(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

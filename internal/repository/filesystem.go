package repository

import (
	"context"
	"io"
	"io/fs"
)

// File is an open file handle supporting random access, as needed by the
// chunked tail reader.
type File interface {
	io.Reader
	io.ReaderAt
	io.Closer
	Stat() (fs.FileInfo, error)
}

// FilesystemRepository abstracts the filesystem syscalls used by the path
// resolver and the mutation and traversal engines. Symlink resolution is
// behind this interface so confinement logic can be tested against a fake.
type FilesystemRepository interface {
	// File operations
	OpenFile(ctx context.Context, path string) (File, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	Lstat(ctx context.Context, path string) (fs.FileInfo, error)

	// Directory operations
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
	MkdirAll(ctx context.Context, path string, perm fs.FileMode) error

	// Link and mutation primitives
	EvalSymlinks(ctx context.Context, path string) (string, error)
	Rename(ctx context.Context, oldPath, newPath string) error
	Remove(ctx context.Context, path string) error

	// File existence and metadata
	Exists(ctx context.Context, path string) (bool, error)
	IsDir(ctx context.Context, path string) (bool, error)
}

// Package fileops performs the mutating filesystem operations: atomic
// writes, line-based edits with diff previews, and moves. All paths passed
// in must already be resolved by the resolver.
package fileops

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/fpt/scopefs/internal/repository"
	"github.com/pkg/errors"
)

// Engine performs mutations through the injected filesystem repository.
type Engine struct {
	fsRepo repository.FilesystemRepository
}

// NewEngine creates a mutation engine backed by fsRepo.
func NewEngine(fsRepo repository.FilesystemRepository) *Engine {
	return &Engine{fsRepo: fsRepo}
}

// WriteFile writes content to path atomically: the bytes go to a uniquely
// named temporary file in the target directory, which is then renamed onto
// the target. Readers see either the old content or the new content in full,
// and concurrent writers to the same target serialize at the rename.
func (e *Engine) WriteFile(ctx context.Context, path string, content []byte) error {
	tempPath := path + "." + randomHex(16) + ".tmp"

	if err := e.fsRepo.WriteFile(ctx, tempPath, content, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := e.fsRepo.Rename(ctx, tempPath, path); err != nil {
		_ = e.fsRepo.Remove(ctx, tempPath)
		return errors.Wrapf(err, "rename onto %s", path)
	}
	return nil
}

// randomHex returns n random bytes hex-encoded. The temp-file suffix must be
// unique per call so concurrent writers never collide on the temporary name.
func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

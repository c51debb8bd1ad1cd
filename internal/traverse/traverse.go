// Package traverse implements the read-only directory operations: recursive
// tree listing, glob search, single-level listings with sizes, and file
// metadata. All traversal honors root confinement via the resolver and never
// follows symlinked directories.
package traverse

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fpt/scopefs/internal/repository"
	"github.com/fpt/scopefs/internal/resolver"
	"github.com/pkg/errors"
)

// Engine walks directory trees through the injected filesystem repository,
// re-validating every visited path with the resolver so a roots update during
// a walk cannot leak entries from a revoked root.
type Engine struct {
	fsRepo   repository.FilesystemRepository
	resolver *resolver.Resolver
}

// NewEngine creates a traversal engine.
func NewEngine(fsRepo repository.FilesystemRepository, res *resolver.Resolver) *Engine {
	return &Engine{fsRepo: fsRepo, resolver: res}
}

// excludedBy reports whether the root-relative path rel matches any of the
// exclude glob patterns.
func excludedBy(rel string, excludePatterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range excludePatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// entryKind classifies a directory entry, resolving a symlink's target kind
// without descending through it.
func (e *Engine) entryKind(ctx context.Context, path string, entry fs.DirEntry) (kind string, symlink bool) {
	if entry.Type()&fs.ModeSymlink == 0 {
		if entry.IsDir() {
			return "directory", false
		}
		return "file", false
	}
	info, err := e.fsRepo.Stat(ctx, path)
	if err == nil && info.IsDir() {
		return "directory", true
	}
	return "file", true
}

// relTo returns path relative to root, or an error when path is not under
// root. Traversal always joins names under root, so failure means a bug.
func relTo(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", errors.Wrapf(err, "relativize %s", path)
	}
	return rel, nil
}

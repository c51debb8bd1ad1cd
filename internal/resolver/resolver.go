// Package resolver turns requested paths into canonical, symlink-free
// absolute paths proven to live inside the allowed roots. Every tool
// operation goes through Resolve before touching the filesystem.
package resolver

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fpt/scopefs/internal/fault"
	"github.com/fpt/scopefs/internal/pathutil"
	"github.com/fpt/scopefs/internal/repository"
	"github.com/fpt/scopefs/internal/roots"
	"github.com/pkg/errors"
)

// ResolvedPath is the outcome of a successful resolution: an absolute,
// symlink-free path inside some allowed root, plus whether the target
// currently exists (write targets may not, yet).
type ResolvedPath struct {
	Path   string
	Exists bool
}

// Resolver validates and canonicalizes requested paths against the root
// registry. It performs only read-only filesystem calls and holds no state
// across operations.
type Resolver struct {
	fsRepo   repository.FilesystemRepository
	registry *roots.Registry
}

// New creates a Resolver bound to a filesystem repository and root registry.
func New(fsRepo repository.FilesystemRepository, registry *roots.Registry) *Resolver {
	return &Resolver{fsRepo: fsRepo, registry: registry}
}

// Resolve normalizes requestedPath, checks confinement before and after
// symlink resolution, and reports whether the final path exists. mustExist
// converts a missing target into fault.ErrNotFound.
//
// The membership check runs twice on purpose: a path can sit inside a root
// as a string yet escape it through a symlink planted anywhere along the
// way, so the real path has to be re-verified after resolution.
func (r *Resolver) Resolve(ctx context.Context, requestedPath string, mustExist bool) (ResolvedPath, error) {
	normalized, err := pathutil.Normalize(requestedPath)
	if err != nil {
		return ResolvedPath{}, err
	}
	if !filepath.IsAbs(normalized) {
		return ResolvedPath{}, errors.Wrapf(fault.ErrNotAbsolute, "%q", requestedPath)
	}

	dirs := r.registry.Dirs()
	if !pathutil.WithinAny(normalized, dirs) {
		// Deliberately the same error whether or not the path exists.
		return ResolvedPath{}, errors.Wrapf(fault.ErrAccessDenied, "%s", normalized)
	}

	real, err := r.realify(ctx, normalized)
	if err != nil {
		return ResolvedPath{}, err
	}
	if !pathutil.WithinAny(real, dirs) {
		return ResolvedPath{}, errors.Wrapf(fault.ErrAccessDenied, "%s", normalized)
	}

	exists, err := r.fsRepo.Exists(ctx, real)
	if err != nil {
		return ResolvedPath{}, errors.Wrapf(err, "stat %s", real)
	}
	if mustExist && !exists {
		return ResolvedPath{}, errors.Wrapf(fault.ErrNotFound, "%s", normalized)
	}
	return ResolvedPath{Path: real, Exists: exists}, nil
}

// realify resolves every symlink along the longest existing prefix of p and
// re-applies the remaining, not-yet-existing components literally. p must be
// normalized and absolute, so the suffix carries no ".." segments.
func (r *Resolver) realify(ctx context.Context, p string) (string, error) {
	real, err := r.fsRepo.EvalSymlinks(ctx, p)
	if err == nil {
		return real, nil
	}
	if !isNotExist(err) {
		return "", errors.Wrapf(err, "resolve %s", p)
	}

	var suffix []string
	cur := p
	for {
		parent := filepath.Dir(cur)
		if parent == cur {
			// Nothing along the path exists; the literal path stands.
			return p, nil
		}
		suffix = append([]string{filepath.Base(cur)}, suffix...)
		cur = parent

		real, err := r.fsRepo.EvalSymlinks(ctx, cur)
		if err == nil {
			return filepath.Join(append([]string{real}, suffix...)...), nil
		}
		if !isNotExist(err) {
			return "", errors.Wrapf(err, "resolve %s", cur)
		}
	}
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || stderrors.Is(err, fs.ErrNotExist)
}

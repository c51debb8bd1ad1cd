// Package roots holds the set of directories the server is allowed to touch.
// The active set is an immutable snapshot replaced wholesale; readers never
// observe a partially-updated root list.
package roots

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fpt/scopefs/internal/fault"
	"github.com/fpt/scopefs/internal/pathutil"
	"github.com/fpt/scopefs/internal/repository"
	"github.com/pkg/errors"
)

// rootSet is an ordered, deduplicated list of normalized, symlink-resolved
// directory paths. It is immutable once installed.
type rootSet struct {
	dirs []string
}

// Registry stores the current root set and supports atomic replacement.
type Registry struct {
	fsRepo   repository.FilesystemRepository
	snapshot atomic.Pointer[rootSet]
}

// NewRegistry creates a Registry with an empty root set. A server with no
// roots rejects every path until a roots update arrives.
func NewRegistry(fsRepo repository.FilesystemRepository) *Registry {
	r := &Registry{fsRepo: fsRepo}
	r.snapshot.Store(&rootSet{})
	return r
}

// Replace validates the candidate paths and installs them as the new root
// set. The update is all-or-nothing: if any candidate fails validation the
// previous set stays active and the error names the offending path.
func (r *Registry) Replace(ctx context.Context, paths []string) error {
	validated := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))

	for _, p := range paths {
		normalized, err := pathutil.Normalize(p)
		if err != nil {
			return errors.Wrapf(err, "root %q", p)
		}
		if !filepath.IsAbs(normalized) {
			return errors.Wrapf(fault.ErrNotAbsolute, "root %q", p)
		}

		// Roots are stored in real-path form so later confinement checks
		// compare resolved against resolved.
		real, err := r.fsRepo.EvalSymlinks(ctx, normalized)
		if err != nil {
			return errors.Wrapf(fault.ErrRootNotFound, "root %q: %v", p, err)
		}
		isDir, err := r.fsRepo.IsDir(ctx, real)
		if err != nil {
			return errors.Wrapf(fault.ErrRootNotFound, "root %q: %v", p, err)
		}
		if !isDir {
			return errors.Wrapf(fault.ErrRootNotADirectory, "root %q", p)
		}

		if _, dup := seen[real]; dup {
			continue
		}
		seen[real] = struct{}{}
		validated = append(validated, real)
	}

	r.snapshot.Store(&rootSet{dirs: validated})
	return nil
}

// List returns a copy of the current root set in registration order.
func (r *Registry) List() []string {
	s := r.snapshot.Load()
	out := make([]string, len(s.dirs))
	copy(out, s.dirs)
	return out
}

// Dirs returns the current snapshot's backing slice. Callers must not
// mutate it; use List when a private copy is needed.
func (r *Registry) Dirs() []string {
	return r.snapshot.Load().dirs
}

// Empty reports whether no roots are currently registered.
func (r *Registry) Empty() bool {
	return len(r.snapshot.Load().dirs) == 0
}

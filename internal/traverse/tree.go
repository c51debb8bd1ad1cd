package traverse

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
)

// Entry is one node of a recursive directory tree. Children is non-nil only
// for directories that were actually descended into; a symlinked directory
// appears as a leaf with kind "directory" and no children.
type Entry struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Children []Entry `json:"children,omitempty"`
}

// Tree builds the recursive tree rooted at root, skipping entries whose
// root-relative path matches an exclude pattern. root must be an already
// resolved directory path.
func (e *Engine) Tree(ctx context.Context, root string, excludePatterns []string) ([]Entry, error) {
	return e.buildTree(ctx, root, root, excludePatterns)
}

func (e *Engine) buildTree(ctx context.Context, current, root string, excludePatterns []string) ([]Entry, error) {
	dirEntries, err := e.fsRepo.ReadDir(ctx, current)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", current)
	}

	result := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entryPath := filepath.Join(current, de.Name())

		rel, err := relTo(root, entryPath)
		if err != nil {
			return nil, err
		}
		if excludedBy(rel, excludePatterns) {
			continue
		}
		if _, err := e.resolver.Resolve(ctx, entryPath, false); err != nil {
			// Entries that fail confinement (e.g. symlinks pointing out of
			// the roots) are omitted rather than failing the whole tree.
			continue
		}

		kind, isSymlink := e.entryKind(ctx, entryPath, de)
		node := Entry{Name: de.Name(), Type: kind}

		if kind == "directory" && !isSymlink {
			children, err := e.buildTree(ctx, entryPath, root, excludePatterns)
			if err != nil {
				children = []Entry{}
			}
			if children == nil {
				children = []Entry{}
			}
			node.Children = children
		}
		result = append(result, node)
	}
	return result, nil
}

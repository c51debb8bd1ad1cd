package traverse

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Search walks the tree rooted at root and returns the full paths of entries
// whose root-relative path matches pattern. Glob semantics: `*` matches any
// run of non-separator characters, `**` crosses separators, `?` matches a
// single character. Excluded subtrees are pruned, not just filtered, and
// symlinked directories are never descended into, so cycles cannot occur.
// The order is deterministic: each directory's entries in name order, parent
// before children.
func (e *Engine) Search(ctx context.Context, root, pattern string, excludePatterns []string) ([]string, error) {
	var results []string
	e.search(ctx, root, root, pattern, excludePatterns, &results)
	return results, nil
}

func (e *Engine) search(ctx context.Context, current, root, pattern string, excludePatterns []string, results *[]string) {
	dirEntries, err := e.fsRepo.ReadDir(ctx, current)
	if err != nil {
		// Unreadable directories are skipped, matching the best-effort
		// contract of a recursive search.
		return
	}

	for _, de := range dirEntries {
		entryPath := filepath.Join(current, de.Name())

		rel, err := relTo(root, entryPath)
		if err != nil {
			continue
		}
		if excludedBy(rel, excludePatterns) {
			continue
		}
		if _, err := e.resolver.Resolve(ctx, entryPath, false); err != nil {
			continue
		}

		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			*results = append(*results, entryPath)
		}

		if de.IsDir() && de.Type()&fs.ModeSymlink == 0 {
			e.search(ctx, entryPath, root, pattern, excludePatterns, results)
		}
	}
}

// Package pathutil provides pure path-string normalization. Nothing in this
// package touches the filesystem; symlink resolution lives in the resolver.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fpt/scopefs/internal/fault"
	"github.com/pkg/errors"
)

// Normalize canonicalizes a raw path string: surrounding quotes and whitespace
// are trimmed, a leading "~" is expanded to the user's home directory, "." and
// ".." segments are collapsed algebraically and separators are reduced to the
// platform form. Drive letters are uppercased so Windows comparisons are
// case-consistent. Embedded null bytes are rejected.
func Normalize(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	p = strings.Trim(p, `"'`)

	if strings.ContainsRune(p, 0) {
		return "", errors.Wrap(fault.ErrInvalidPath, "embedded null byte")
	}
	if p == "" {
		return "", errors.Wrap(fault.ErrInvalidPath, "empty path")
	}

	p = ExpandHome(p)
	p = filepath.Clean(filepath.FromSlash(p))

	if vol := filepath.VolumeName(p); len(vol) == 2 && vol[1] == ':' {
		p = strings.ToUpper(vol[:1]) + p[1:]
	}
	return p, nil
}

// ExpandHome replaces a leading "~" or "~/" with the current user's home
// directory. If the home directory cannot be resolved the input is returned
// unchanged and is later treated as a literal relative path.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

// IsWithin reports whether path equals root or lives underneath it. The check
// is boundary-aware: "/var/database" is not within root "/var/data". Both
// arguments must already be normalized absolute paths.
func IsWithin(path, root string) bool {
	if path == root {
		return true
	}
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// WithinAny reports whether path is contained by at least one of roots.
func WithinAny(path string, roots []string) bool {
	for _, r := range roots {
		if IsWithin(path, r) {
			return true
		}
	}
	return false
}

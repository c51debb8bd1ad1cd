// Package fault defines the error taxonomy shared by the path resolver,
// the mutation engine and the traversal engine. The dispatcher maps every
// one of these to a tool-visible error message; nothing here crosses the
// wire as anything other than text.
package fault

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPath covers malformed input such as embedded null bytes.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotAbsolute is returned when a tool argument is a relative path.
	// All tool arguments are required to be absolute.
	ErrNotAbsolute = errors.New("path must be absolute")

	// ErrAccessDenied is returned for any path outside the allowed roots,
	// including paths that escape via symlink resolution. The message never
	// distinguishes a forbidden path from a non-existent one.
	ErrAccessDenied = errors.New("access denied - path outside allowed directories")

	// ErrNotFound is returned when an operation requires the target to exist
	// and it does not.
	ErrNotFound = errors.New("path does not exist")

	// ErrRootNotFound and ErrRootNotADirectory reject bad root configuration.
	ErrRootNotFound      = errors.New("root directory does not exist")
	ErrRootNotADirectory = errors.New("root path is not a directory")
)

// EditMatchError reports an edit operation whose oldText has no match in the
// file content, neither exact nor whitespace-normalized.
type EditMatchError struct {
	OldText string
}

func (e *EditMatchError) Error() string {
	return fmt.Sprintf("could not find exact match for edit:\n%s", e.OldText)
}

// IsEditMatch reports whether err is (or wraps) an EditMatchError.
func IsEditMatch(err error) bool {
	var em *EditMatchError
	return stderrors.As(err, &em)
}

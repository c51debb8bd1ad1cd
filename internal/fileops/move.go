package fileops

import (
	"context"
	stderrors "errors"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// Move renames source to destination. Both paths must have been resolved
// independently, since they may live under different roots. Within one
// filesystem the rename is atomic; across filesystems a copy-then-delete
// fallback is used for regular files, removing any partially copied
// destination if the copy fails.
func (e *Engine) Move(ctx context.Context, source, destination string) error {
	if exists, err := e.fsRepo.Exists(ctx, destination); err != nil {
		return errors.Wrapf(err, "stat %s", destination)
	} else if exists {
		return errors.Errorf("destination already exists: %s", destination)
	}

	err := e.fsRepo.Rename(ctx, source, destination)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return errors.Wrapf(err, "move %s to %s", source, destination)
	}

	info, statErr := e.fsRepo.Stat(ctx, source)
	if statErr != nil {
		return errors.Wrapf(statErr, "stat %s", source)
	}
	if info.IsDir() {
		// Directory moves across filesystems are not attempted; a partial
		// recursive copy is worse than a clean failure.
		return errors.Wrapf(err, "move %s to %s", source, destination)
	}

	content, readErr := e.fsRepo.ReadFile(ctx, source)
	if readErr != nil {
		return errors.Wrapf(readErr, "copy %s", source)
	}
	if writeErr := e.WriteFile(ctx, destination, content); writeErr != nil {
		_ = e.fsRepo.Remove(ctx, destination)
		return errors.Wrapf(writeErr, "copy %s to %s", source, destination)
	}
	if rmErr := e.fsRepo.Remove(ctx, source); rmErr != nil {
		return errors.Wrapf(rmErr, "remove source %s after copy", source)
	}
	return nil
}

// isCrossDevice reports whether err is a rename failure caused by source and
// destination living on different filesystems.
func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if stderrors.As(err, &linkErr) {
		return linkErr.Err == syscall.EXDEV
	}
	return stderrors.Is(err, syscall.EXDEV)
}

package traverse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FileInfo is the metadata returned by the get_file_info operation.
type FileInfo struct {
	Size        int64
	Modified    time.Time
	IsDirectory bool
	Permissions string
}

// Info returns metadata for an already resolved path.
func (e *Engine) Info(ctx context.Context, path string) (FileInfo, error) {
	info, err := e.fsRepo.Stat(ctx, path)
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, "stat %s", path)
	}
	return FileInfo{
		Size:        info.Size(),
		Modified:    info.ModTime(),
		IsDirectory: info.IsDir(),
		Permissions: fmt.Sprintf("%03o", info.Mode().Perm()),
	}, nil
}

// Format renders the metadata as the line-per-field text the tool returns.
func (fi FileInfo) Format(path string) string {
	kind := "file"
	if fi.IsDirectory {
		kind = "directory"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("path: %s\n", path))
	b.WriteString(fmt.Sprintf("size: %s (%d bytes)\n", FormatSize(fi.Size), fi.Size))
	b.WriteString(fmt.Sprintf("type: %s\n", kind))
	b.WriteString(fmt.Sprintf("permissions: %s\n", fi.Permissions))
	b.WriteString(fmt.Sprintf("modified: %s", fi.Modified.Format(time.RFC3339)))
	return b.String()
}

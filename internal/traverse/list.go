package traverse

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ListEntry is one row of a single-level directory listing.
type ListEntry struct {
	Name  string
	IsDir bool
	Size  int64
}

// List reads a single directory level and returns its entries sorted by name
// (lexicographic) or by size (descending, names breaking ties). Entries whose
// metadata cannot be read are reported with size zero rather than dropped.
func (e *Engine) List(ctx context.Context, dir, sortBy string) ([]ListEntry, error) {
	dirEntries, err := e.fsRepo.ReadDir(ctx, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	entries := make([]ListEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		row := ListEntry{Name: de.Name(), IsDir: de.IsDir()}
		if info, err := de.Info(); err == nil {
			row.Size = info.Size()
		}
		entries = append(entries, row)
	}

	if sortBy == "size" {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Size != entries[j].Size {
				return entries[i].Size > entries[j].Size
			}
			return entries[i].Name < entries[j].Name
		})
	} else {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Name < entries[j].Name
		})
	}
	return entries, nil
}

// FormatListing renders entries in the [DIR]/[FILE] layout with a summary of
// counts and combined size.
func FormatListing(entries []ListEntry) string {
	var b strings.Builder
	var totalFiles, totalDirs int
	var totalSize int64

	for _, entry := range entries {
		prefix := "[FILE]"
		sizeStr := ""
		if entry.IsDir {
			prefix = "[DIR]"
			totalDirs++
		} else {
			totalFiles++
			totalSize += entry.Size
			sizeStr = fmt.Sprintf("%10s", FormatSize(entry.Size))
		}
		b.WriteString(fmt.Sprintf("%s %-30s %s\n", prefix, entry.Name, sizeStr))
	}

	b.WriteString(fmt.Sprintf("\nTotal: %d files, %d directories\n", totalFiles, totalDirs))
	b.WriteString(fmt.Sprintf("Combined size: %s", FormatSize(totalSize)))
	return b.String()
}

// FormatSize renders a byte count in a human-readable unit.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

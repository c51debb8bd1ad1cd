package fileops

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Head returns the first numLines lines of the file at path without reading
// the rest of it.
func (e *Engine) Head(ctx context.Context, path string, numLines int) (string, error) {
	f, err := e.fsRepo.OpenFile(ctx, path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for len(lines) < numLines && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return strings.Join(lines, "\n"), nil
}

// Tail returns the last numLines lines of the file at path, reading the file
// backwards in fixed-size chunks so large files are not loaded whole.
func (e *Engine) Tail(ctx context.Context, path string, numLines int) (string, error) {
	const chunkSize = 1024

	f, err := e.fsRepo.OpenFile(ctx, path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", errors.Wrapf(err, "stat %s", path)
	}
	size := info.Size()
	if size == 0 {
		return "", nil
	}

	var lines []string
	position := size
	remainder := ""
	last := true

	for position > 0 && len(lines) < numLines {
		readSize := int64(chunkSize)
		if position < readSize {
			readSize = position
		}
		position -= readSize

		chunk := make([]byte, readSize)
		if _, err := f.ReadAt(chunk, position); err != nil && err != io.EOF {
			return "", errors.Wrapf(err, "read %s", path)
		}

		text := normalizeLineEndings(string(chunk) + remainder)
		if last {
			// A trailing newline terminates the final line rather than
			// starting an empty one.
			text = strings.TrimSuffix(text, "\n")
			last = false
		}
		chunkLines := strings.Split(text, "\n")
		if position > 0 {
			// The first line of the chunk may be cut; carry it into the
			// next (earlier) chunk.
			remainder = chunkLines[0]
			chunkLines = chunkLines[1:]
		}

		for i := len(chunkLines) - 1; i >= 0 && len(lines) < numLines; i-- {
			lines = append([]string{chunkLines[i]}, lines...)
		}
	}

	return strings.Join(lines, "\n"), nil
}

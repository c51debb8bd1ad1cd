package fileops

import (
	"context"
	"strings"

	"github.com/fpt/scopefs/internal/fault"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// EditOperation replaces one contiguous span of text with another. Within a
// single ApplyEdits call, operations run in order, each against the content
// as mutated by its predecessors.
type EditOperation struct {
	OldText string `json:"oldText"`
	NewText string `json:"newText"`
}

// ApplyEdits applies edits to the file at path and returns a fenced unified
// diff describing the change. With dryRun the file is left untouched and only
// the preview is returned; otherwise the result is committed through the
// atomic write path.
//
// Matching is exact-substring first. If that fails, a line-window match with
// per-line whitespace trimming is attempted, preserving the indentation of
// the matched window's first line. No match at all yields an EditMatchError
// naming the oldText.
func (e *Engine) ApplyEdits(ctx context.Context, path string, edits []EditOperation, dryRun bool) (string, error) {
	raw, err := e.fsRepo.ReadFile(ctx, path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	content := normalizeLineEndings(string(raw))

	modified := content
	for _, edit := range edits {
		oldText := normalizeLineEndings(edit.OldText)
		newText := normalizeLineEndings(edit.NewText)

		if strings.Contains(modified, oldText) {
			modified = strings.Replace(modified, oldText, newText, 1)
			continue
		}

		replaced, ok := replaceLineWindow(modified, oldText, newText)
		if !ok {
			return "", &fault.EditMatchError{OldText: edit.OldText}
		}
		modified = replaced
	}

	diff, err := unifiedDiff(content, modified, path)
	if err != nil {
		return "", errors.Wrap(err, "diff")
	}
	preview := fenceDiff(diff)

	if !dryRun {
		if err := e.WriteFile(ctx, path, []byte(modified)); err != nil {
			return "", err
		}
	}
	return preview, nil
}

// replaceLineWindow looks for a run of lines in content whose
// whitespace-trimmed forms equal those of oldText, and substitutes newText
// there. The matched window's first-line indentation is carried over onto
// newText's first line.
func replaceLineWindow(content, oldText, newText string) (string, bool) {
	oldLines := strings.Split(oldText, "\n")
	contentLines := strings.Split(content, "\n")

	for i := 0; i+len(oldLines) <= len(contentLines); i++ {
		match := true
		for j, oldLine := range oldLines {
			if strings.TrimSpace(oldLine) != strings.TrimSpace(contentLines[i+j]) {
				match = false
				break
			}
		}
		if !match {
			continue
		}

		first := contentLines[i]
		indent := first[:len(first)-len(strings.TrimLeft(first, " \t"))]

		newLines := strings.Split(newText, "\n")
		replacement := make([]string, len(newLines))
		for j, line := range newLines {
			if j == 0 {
				replacement[j] = indent + strings.TrimLeft(line, " \t")
			} else {
				replacement[j] = line
			}
		}

		out := make([]string, 0, len(contentLines)-len(oldLines)+len(replacement))
		out = append(out, contentLines[:i]...)
		out = append(out, replacement...)
		out = append(out, contentLines[i+len(oldLines):]...)
		return strings.Join(out, "\n"), true
	}
	return "", false
}

// unifiedDiff renders a unified diff between the original and modified
// content with the conventional "(original)"/"(modified)" headers.
func unifiedDiff(original, modified, path string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: path + " (original)",
		ToFile:   path + " (modified)",
		Context:  3,
	})
}

// fenceDiff wraps a diff in a backtick fence long enough that no run of
// backticks inside the diff terminates it early.
func fenceDiff(diff string) string {
	numBackticks := 3
	for strings.Contains(diff, strings.Repeat("`", numBackticks)) {
		numBackticks++
	}
	fence := strings.Repeat("`", numBackticks)
	return fence + "diff\n" + diff + "\n" + fence + "\n\n"
}

func normalizeLineEndings(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

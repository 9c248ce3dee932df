package patchfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/oliworks/devbed/internal/messages"
)

// explainMaxLines caps the rendered mismatch per hunk.
const explainMaxLines = 40

// Explain describes why a parsed patch fails to apply to the tree at root.
// For each touched file it locates the first hunk whose pre-image no longer
// matches the tree and renders the difference. The comparison ignores
// missing-trailing-newline markers, so it is a diagnosis aid, not a
// re-implementation of git apply. Returns an empty string when no mismatch
// can be located.
func Explain(p *Patch, root string, strip int) string {
	var b strings.Builder
	for _, file := range p.Files {
		target, err := file.Target(strip)
		if err != nil {
			continue
		}
		explainFile(&b, p.Name, file, root, target)
	}
	return b.String()
}

func explainFile(b *strings.Builder, patchName string, file FileDiff, root, target string) {
	path := filepath.Join(root, filepath.FromSlash(target))
	if file.IsCreate() {
		if _, err := os.Lstat(path); err == nil {
			fmt.Fprintf(b, messages.PatchConflictCreateExistsFmt+"\n", patchName, target)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(b, messages.PatchConflictFileMissingFmt+"\n", patchName, target)
		} else {
			fmt.Fprintf(b, messages.PatchConflictReadTargetFmt+"\n", patchName, target, err)
		}
		return
	}

	actual := strings.Split(string(data), "\n")
	if len(actual) > 0 && actual[len(actual)-1] == "" {
		actual = actual[:len(actual)-1]
	}
	for i, hunk := range file.Hunks {
		expected := hunk.OldText()
		window := windowAt(actual, hunk.OldStart, hunk.OldLines)
		if expected == window {
			continue
		}
		if hunk.NewText() == window {
			fmt.Fprintf(b, messages.PatchAlreadyAppliedFmt+"\n", patchName)
			return
		}
		fmt.Fprintf(b, messages.PatchConflictHunkFmt+"\n", patchName, i+1, target)
		b.WriteString(renderMismatch(expected, window))
		return
	}
}

// windowAt returns count lines of the file starting at the 1-based line
// start, joined with trailing newlines.
func windowAt(lines []string, start, count int) string {
	if count <= 0 || start <= 0 {
		return ""
	}
	from := start - 1
	if from >= len(lines) {
		return ""
	}
	to := from + count
	if to > len(lines) {
		to = len(lines)
	}
	return strings.Join(lines[from:to], "\n") + "\n"
}

// renderMismatch renders a unified diff between what the patch expects and
// what the tree contains, capped at explainMaxLines.
func renderMismatch(expected, actual string) string {
	diff := udiff.Unified(messages.PatchConflictExpectedName, messages.PatchConflictActualName, expected, actual)
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if len(lines) > explainMaxLines {
		lines = append(lines[:explainMaxLines], fmt.Sprintf(messages.PatchConflictTruncatedFmt, explainMaxLines))
	}
	return strings.Join(lines, "\n") + "\n"
}

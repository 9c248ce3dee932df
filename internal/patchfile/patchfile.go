// Package patchfile parses unified diffs and explains why one no longer
// applies to a provisioned tree.
package patchfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/oliworks/devbed/internal/messages"
)

// DevNull is the path unified diffs use for created and deleted files.
const DevNull = "/dev/null"

// Patch is one parsed unified diff.
type Patch struct {
	// Name is the file name under .devbed/patches, used in messages.
	Name string
	// SHA256 is the hex digest of the raw patch bytes.
	SHA256 string
	Files  []FileDiff
}

// FileDiff is the change to a single file, with paths as written in the
// patch (before any strip).
type FileDiff struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// Hunk is one @@ block. Counts mirror the hunk header.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// Line is one hunk body line without its prefix character.
type Line struct {
	Op   byte // ' ', '-', or '+'
	Text string
}

// IsCreate reports whether the diff creates the file.
func (f FileDiff) IsCreate() bool { return f.OldPath == DevNull }

// IsDelete reports whether the diff deletes the file.
func (f FileDiff) IsDelete() bool { return f.NewPath == DevNull }

// Target returns the stripped path the diff applies to.
func (f FileDiff) Target(strip int) (string, error) {
	path := f.NewPath
	if f.IsDelete() {
		path = f.OldPath
	}
	return StripPath(path, strip)
}

// OldText returns the hunk's expected pre-image: context and removed lines.
func (h Hunk) OldText() string {
	return h.sideText('-')
}

// NewText returns the hunk's post-image: context and added lines.
func (h Hunk) NewText() string {
	return h.sideText('+')
}

func (h Hunk) sideText(keep byte) string {
	var b strings.Builder
	for _, line := range h.Lines {
		if line.Op == ' ' || line.Op == keep {
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// StripPath removes strip leading slash-separated components, mirroring
// git apply -p semantics. Patch paths always use forward slashes.
func StripPath(path string, strip int) (string, error) {
	parts := strings.Split(path, "/")
	if strip >= len(parts) {
		return "", fmt.Errorf(messages.PatchStripTooDeepFmt, strip, path)
	}
	stripped := strings.Join(parts[strip:], "/")
	for _, part := range parts[strip:] {
		if part == ".." {
			return "", fmt.Errorf(messages.PatchPathEscapesFmt, path)
		}
	}
	return stripped, nil
}

// Targets returns the unique stripped paths the patch touches, in patch order.
func (p *Patch) Targets(strip int) ([]string, error) {
	seen := make(map[string]struct{}, len(p.Files))
	targets := make([]string, 0, len(p.Files))
	for _, file := range p.Files {
		target, err := file.Target(strip)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
	}
	return targets, nil
}

// Parse parses unified diff data. name identifies the patch in errors and
// conflict output.
func Parse(name string, data []byte) (*Patch, error) {
	sum := sha256.Sum256(data)
	patch := &Patch{
		Name:   name,
		SHA256: hex.EncodeToString(sum[:]),
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var current *FileDiff
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "--- "):
			if i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], "+++ ") {
				return nil, parseError(name, i+1, messages.PatchMissingNewHeader)
			}
			patch.Files = append(patch.Files, FileDiff{
				OldPath: headerPath(line[4:]),
				NewPath: headerPath(lines[i+1][4:]),
			})
			current = &patch.Files[len(patch.Files)-1]
			i++
		case strings.HasPrefix(line, "@@ "):
			if current == nil {
				return nil, parseError(name, i+1, messages.PatchHunkBeforeHeader)
			}
			hunk, consumed, err := parseHunk(name, lines, i)
			if err != nil {
				return nil, err
			}
			current.Hunks = append(current.Hunks, hunk)
			i += consumed
		default:
			// Preamble between files: diff --git, index, mode lines.
		}
	}

	if len(patch.Files) == 0 {
		return nil, fmt.Errorf(messages.PatchParseFailedFmt, name, errors.New(messages.PatchEmpty))
	}
	return patch, nil
}

// headerPath extracts the path from a ---/+++ header value, dropping the
// optional timestamp after a tab.
func headerPath(value string) string {
	if idx := strings.IndexByte(value, '\t'); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

// parseHunk parses the @@ header at lines[start] and its body. It returns
// the hunk and how many lines beyond the header were consumed.
func parseHunk(name string, lines []string, start int) (Hunk, int, error) {
	hunk, err := parseHunkHeader(lines[start])
	if err != nil {
		return Hunk{}, 0, parseError(name, start+1, messages.PatchBadHunkHeader)
	}

	oldRemaining := hunk.OldLines
	newRemaining := hunk.NewLines
	consumed := 0
	for oldRemaining > 0 || newRemaining > 0 {
		index := start + 1 + consumed
		if index >= len(lines) {
			return Hunk{}, 0, parseError(name, len(lines), messages.PatchTruncatedHunk)
		}
		line := lines[index]
		consumed++

		if strings.HasPrefix(line, "\\") {
			// "\ No newline at end of file" annotates the previous line.
			continue
		}
		op := byte(' ')
		text := line
		if line != "" {
			op = line[0]
			text = line[1:]
		}
		switch op {
		case ' ':
			oldRemaining--
			newRemaining--
		case '-':
			oldRemaining--
		case '+':
			newRemaining--
		default:
			return Hunk{}, 0, parseError(name, index+1, fmt.Sprintf(messages.PatchBadHunkLineFmt, string(op)))
		}
		if oldRemaining < 0 || newRemaining < 0 {
			return Hunk{}, 0, parseError(name, index+1, messages.PatchBadHunkHeader)
		}
		hunk.Lines = append(hunk.Lines, Line{Op: op, Text: text})
	}
	return hunk, consumed, nil
}

// parseHunkHeader parses "@@ -start,count +start,count @@".
func parseHunkHeader(line string) (Hunk, error) {
	rest, ok := strings.CutPrefix(line, "@@ ")
	if !ok {
		return Hunk{}, errors.New(messages.PatchBadHunkHeader)
	}
	rest, _, ok = strings.Cut(rest, " @@")
	if !ok {
		return Hunk{}, errors.New(messages.PatchBadHunkHeader)
	}
	oldPart, newPart, ok := strings.Cut(rest, " ")
	if !ok || !strings.HasPrefix(oldPart, "-") || !strings.HasPrefix(newPart, "+") {
		return Hunk{}, errors.New(messages.PatchBadHunkHeader)
	}

	var hunk Hunk
	var err error
	if hunk.OldStart, hunk.OldLines, err = parseRange(oldPart[1:]); err != nil {
		return Hunk{}, err
	}
	if hunk.NewStart, hunk.NewLines, err = parseRange(newPart[1:]); err != nil {
		return Hunk{}, err
	}
	return hunk, nil
}

// parseRange parses "start" or "start,count"; a bare start means count 1.
func parseRange(value string) (int, int, error) {
	startPart, countPart, hasCount := strings.Cut(value, ",")
	start, err := parseNonNegativeInt(startPart)
	if err != nil {
		return 0, 0, err
	}
	count := 1
	if hasCount {
		if count, err = parseNonNegativeInt(countPart); err != nil {
			return 0, 0, err
		}
	}
	return start, count, nil
}

func parseNonNegativeInt(value string) (int, error) {
	if value == "" {
		return 0, errors.New(messages.PatchBadHunkHeader)
	}
	n := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, errors.New(messages.PatchBadHunkHeader)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

func parseError(name string, lineNo int, detail string) error {
	return fmt.Errorf(messages.PatchParseFailedFmt, name, fmt.Errorf(messages.PatchLineErrorFmt, lineNo, detail))
}

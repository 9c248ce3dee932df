// Package wizard implements the interactive setup wizard for devbed.
//
// # TOML Rewriting Strategy
//
// The wizard rewrites config.toml with custom line-based parsing instead of
// the go-toml library's tree manipulation:
//
//  1. Comment preservation: go-toml's serializer loses inline comments and
//     rearranges leading comments. The template's guidance comments must
//     survive a rewrite.
//
//  2. Deterministic output: sections are emitted in template order, so a
//     wizard-written config always reads the same way.
//
//  3. Key positioning: optional keys left at their defaults stay as the
//     template's commented lines instead of being written out or deleted.
//
// The go-toml library is still used for syntax validation before and after
// rewriting. The devbed schema has only single-line scalar values, so the
// parser does not track multiline strings; unknown sections and arrays pass
// through untouched.
package wizard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	// toml is used for syntax validation only; manipulation is line-based
	// to preserve comments and formatting.
	toml "github.com/pelletier/go-toml"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/templates"
)

type tomlBlock struct {
	name  string
	lines []string
}

type tomlDocument struct {
	preamble []string
	sections map[string]*tomlBlock
	arrays   map[string][]*tomlBlock
	order    []string
}

// RenderConfig applies wizard choices to config content. current is the
// existing config (empty when none exists yet); the embedded template
// supplies ordering and canonical formatting. Returns the rewritten content.
func RenderConfig(current string, choices *Choices) (string, error) {
	if strings.TrimSpace(current) != "" {
		if _, err := toml.LoadBytes([]byte(current)); err != nil {
			return "", fmt.Errorf(messages.WizardParseConfigFailedFmt, err)
		}
	}

	templateBytes, err := templates.Read("config.toml")
	if err != nil {
		return "", fmt.Errorf(messages.WizardReadTemplateFailedFmt, err)
	}

	templateDoc := parseTomlDocument(string(templateBytes))
	currentDoc := parseTomlDocument(current)

	output := assembleConfig(currentDoc, templateDoc, choices)
	return strings.Join(output, "\n") + "\n", nil
}

// assembleConfig renders the updated config lines in template order, then
// the selected patch blocks, then any sections the template does not know.
func assembleConfig(currentDoc, templateDoc tomlDocument, choices *Choices) []string {
	preamble := choosePreamble(currentDoc.preamble, templateDoc.preamble)
	output := make([]string, 0, len(preamble))
	output = append(output, preamble...)

	for _, name := range templateDoc.order {
		block := selectSectionBlock(currentDoc.sections[name], templateDoc.sections[name])
		if block == nil {
			continue
		}
		updated := cloneBlock(block)
		applySectionUpdates(name, updated, templateDoc.sections[name], choices)
		appendBlock(&output, updated.lines)
	}

	for _, block := range buildPatchBlocks(currentDoc, choices) {
		appendBlock(&output, block.lines)
	}

	for _, block := range extraSectionBlocks(currentDoc.sections, templateDoc.sections) {
		appendBlock(&output, block.lines)
	}
	for _, block := range extraArrayBlocks(currentDoc.arrays) {
		appendBlock(&output, block.lines)
	}

	return trimTrailingEmptyLines(output)
}

// applySectionUpdates mutates the block in place based on wizard choices.
// templateBlock provides canonical formatting for inserted keys.
func applySectionUpdates(name string, block *tomlBlock, templateBlock *tomlBlock, choices *Choices) {
	switch name {
	case "framework":
		setKeyValue(block, templateBlock, "url", formatTomlValue(choices.URL), "")
		setKeyValue(block, templateBlock, "revision", formatTomlValue(choices.Revision), "url")
		setKeyValue(block, templateBlock, "subdir", formatTomlValue(choices.Subdir), "revision")
		setKeyValue(block, templateBlock, "dest", formatTomlValue(choices.Dest), "subdir")
		setOptionalKeyValue(block, templateBlock, "scratch", nonDefault(choices.Scratch, config.DefaultScratch), "dest")
		setOptionalKeyValue(block, templateBlock, "modules_dir", nonDefault(choices.ModulesDir, config.DefaultModulesDir), "scratch")
		setOptionalKeyValue(block, templateBlock, "tests_dir", nonDefault(choices.TestsDir, config.DefaultTestsDir), "modules_dir")
	case "module":
		setKeyValue(block, templateBlock, "name", formatTomlValue(choices.ModuleName), "")
		setKeyValue(block, templateBlock, "source", formatTomlValue(choices.ModuleSource), "name")
		setKeyValue(block, templateBlock, "tests", formatTomlValue(choices.ModuleTests), "source")
	}
}

// nonDefault returns value, or empty when it equals the default so the
// rendered key stays commented.
func nonDefault(value, def string) string {
	if value == def {
		return ""
	}
	return value
}

// buildPatchBlocks renders one [[patch]] block per selected patch, reusing
// the existing block (with its comments and strip value) when the file was
// already configured.
func buildPatchBlocks(currentDoc tomlDocument, choices *Choices) []tomlBlock {
	currentByFile := make(map[string]*tomlBlock)
	for _, block := range currentDoc.arrays["patch"] {
		if file := extractBlockValue(block.lines, "file"); file != "" {
			if _, exists := currentByFile[file]; !exists {
				currentByFile[file] = block
			}
		}
	}

	blocks := make([]tomlBlock, 0, len(choices.Patches))
	for _, p := range choices.Patches {
		if existing, ok := currentByFile[p.File]; ok {
			blocks = append(blocks, tomlBlock{name: "patch", lines: cloneLines(existing.lines)})
			continue
		}
		lines := []string{"[[patch]]", fmt.Sprintf("file = %s", formatTomlValue(p.File))}
		if p.Strip != nil {
			lines = append(lines, fmt.Sprintf("strip = %d", *p.Strip))
		}
		blocks = append(blocks, tomlBlock{name: "patch", lines: lines})
	}
	return blocks
}

// extractBlockValue returns the unquoted value of the first uncommented
// key line in a block, or empty when the key is absent.
func extractBlockValue(lines []string, key string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		parsed, ok := parseKeyLine(line, key)
		if !ok || parsed.commented {
			continue
		}
		clean := line
		if pos := scanLineForComment(line); pos >= 0 {
			clean = line[:pos]
		}
		eq := strings.Index(clean, "=")
		if eq < 0 {
			continue
		}
		return strings.Trim(strings.TrimSpace(clean[eq+1:]), "\"'")
	}
	return ""
}

// choosePreamble returns the preamble lines to keep before the first table.
func choosePreamble(current []string, template []string) []string {
	for _, line := range current {
		if strings.TrimSpace(line) != "" {
			return current
		}
	}
	return template
}

// selectSectionBlock picks the current block when present, otherwise the template block.
func selectSectionBlock(current *tomlBlock, template *tomlBlock) *tomlBlock {
	if current != nil {
		return current
	}
	return template
}

// setOptionalKeyValue updates the key, or comments it out when value is empty.
func setOptionalKeyValue(block *tomlBlock, templateBlock *tomlBlock, key string, value string, afterKey string) {
	if value == "" {
		setCommentedKeyLine(block, templateBlock, key, afterKey)
		return
	}
	setKeyValue(block, templateBlock, key, formatTomlValue(value), afterKey)
}

// setCommentedKeyLine ensures the key line is commented, inserting the
// template's commented line when available.
func setCommentedKeyLine(block *tomlBlock, templateBlock *tomlBlock, key string, afterKey string) {
	if templateBlock != nil {
		if templateLine, ok := findKeyLine(templateBlock.lines, key); ok {
			replaceOrInsertLine(block, key, ensureCommented(templateLine.raw), afterKey)
			return
		}
	}
	if existingLine, ok := findKeyLine(block.lines, key); ok {
		replaceOrInsertLine(block, key, ensureCommented(existingLine.raw), afterKey)
	}
}

// setKeyValue updates or inserts a key/value line in a section block.
// templateBlock provides canonical formatting; afterKey controls insertion order.
func setKeyValue(block *tomlBlock, templateBlock *tomlBlock, key string, value string, afterKey string) {
	var base keyLine
	if templateBlock != nil {
		if templateLine, ok := findKeyLine(templateBlock.lines, key); ok {
			base = templateLine
		}
	}
	if base.raw == "" {
		if existingLine, ok := findKeyLine(block.lines, key); ok {
			base = existingLine
		}
	}
	replaceOrInsertLine(block, key, buildKeyLine(base, key, value), afterKey)
}

// keyLine holds a parsed key/value line with comment metadata.
type keyLine struct {
	raw           string
	indent        string
	commented     bool
	inlineComment string
}

// findKeyLine searches lines for a key/value assignment, commented or not.
func findKeyLine(lines []string, key string) (keyLine, bool) {
	for _, line := range lines {
		if parsed, ok := parseKeyLine(line, key); ok {
			return parsed, true
		}
	}
	return keyLine{}, false
}

// parseKeyLine parses a key/value assignment line. Returns false when the
// line does not define the requested key.
func parseKeyLine(line string, key string) (keyLine, bool) {
	indentLen := len(line) - len(strings.TrimLeft(line, " \t"))
	indent := line[:indentLen]
	trimmed := strings.TrimLeft(line[indentLen:], " \t")
	commented := false
	if strings.HasPrefix(trimmed, "#") {
		commented = true
		trimmed = strings.TrimLeft(strings.TrimPrefix(trimmed, "#"), " \t")
	}
	if !strings.HasPrefix(trimmed, key) {
		return keyLine{}, false
	}
	rest := strings.TrimSpace(trimmed[len(key):])
	if !strings.HasPrefix(rest, "=") {
		return keyLine{}, false
	}
	inlineComment := ""
	if pos := scanLineForComment(trimmed); pos >= 0 {
		inlineComment = strings.TrimSpace(trimmed[pos:])
	}
	return keyLine{raw: line, indent: indent, commented: commented, inlineComment: inlineComment}, true
}

// buildKeyLine renders a key/value line using indentation and inline comment from base.
func buildKeyLine(base keyLine, key string, value string) string {
	line := fmt.Sprintf("%s%s = %s", base.indent, key, value)
	if base.inlineComment != "" {
		line += " " + base.inlineComment
	}
	return line
}

// ensureCommented returns the line with a leading comment marker.
func ensureCommented(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return line
	}
	indent := line[:len(line)-len(trimmed)]
	return indent + "# " + trimmed
}

// replaceOrInsertLine replaces an existing key line or inserts a new line
// after afterKey. Duplicate key lines are removed so the key occurs once.
func replaceOrInsertLine(block *tomlBlock, key string, newLine string, afterKey string) {
	var matches []int
	uncommentedIndex := -1
	for i, line := range block.lines {
		parsed, ok := parseKeyLine(line, key)
		if !ok {
			continue
		}
		matches = append(matches, i)
		if !parsed.commented && uncommentedIndex == -1 {
			uncommentedIndex = i
		}
	}
	if len(matches) > 0 {
		replaceAt := matches[0]
		if uncommentedIndex >= 0 {
			replaceAt = uncommentedIndex
		}
		block.lines[replaceAt] = newLine
		// Remove duplicate key lines in reverse order to avoid index shifting.
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i] == replaceAt {
				continue
			}
			block.lines = append(block.lines[:matches[i]], block.lines[matches[i]+1:]...)
		}
		return
	}
	insertAt := findInsertIndex(block.lines, afterKey)
	block.lines = append(block.lines[:insertAt], append([]string{newLine}, block.lines[insertAt:]...)...)
}

// findInsertIndex returns the line index to insert a new key line after
// afterKey. lines include the section header as the first entry.
func findInsertIndex(lines []string, afterKey string) int {
	if len(lines) == 0 {
		return 0
	}
	if afterKey != "" {
		for i, line := range lines {
			if _, ok := parseKeyLine(line, afterKey); ok {
				return i + 1
			}
		}
	}
	return 1
}

// formatTomlValue converts a scalar value into a TOML literal string.
func formatTomlValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// scanLineForComment returns the index of the first # outside a quoted
// string, or -1 when the line has no comment.
func scanLineForComment(line string) int {
	inDouble := false
	inSingle := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inDouble {
			if ch == '\\' {
				i++
				continue
			}
			if ch == '"' {
				inDouble = false
			}
			continue
		}
		if inSingle {
			if ch == '\'' {
				inSingle = false
			}
			continue
		}
		switch ch {
		case '"':
			inDouble = true
		case '\'':
			inSingle = true
		case '#':
			return i
		}
	}
	return -1
}

// parseTomlDocument splits TOML content into preamble lines, section blocks,
// and array-of-table blocks, recording section order of appearance.
func parseTomlDocument(content string) tomlDocument {
	lines := strings.Split(content, "\n")
	sections := make(map[string]*tomlBlock)
	arrays := make(map[string][]*tomlBlock)
	var order []string
	var preamble []string
	var current *tomlBlock
	var currentIsArray bool

	flush := func() {
		if current == nil {
			return
		}
		if currentIsArray {
			arrays[current.name] = append(arrays[current.name], current)
		} else {
			if _, exists := sections[current.name]; !exists {
				sections[current.name] = current
				order = append(order, current.name)
			}
		}
		current = nil
		currentIsArray = false
	}

	for _, line := range lines {
		name, isArray, ok := parseTomlHeader(line)
		if ok {
			flush()
			current = &tomlBlock{name: name, lines: []string{line}}
			currentIsArray = isArray
			continue
		}
		if current == nil {
			preamble = append(preamble, line)
			continue
		}
		current.lines = append(current.lines, line)
	}
	flush()

	return tomlDocument{
		preamble: preamble,
		sections: sections,
		arrays:   arrays,
		order:    order,
	}
}

// parseTomlHeader detects a TOML table header line and extracts its name.
// Handles inline comments like `[section] # comment`. Returns the name,
// whether it is an array-of-tables, and a match flag.
func parseTomlHeader(line string) (string, bool, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false, false
	}
	if pos := scanLineForComment(trimmed); pos >= 0 {
		trimmed = strings.TrimSpace(trimmed[:pos])
	}
	if strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]]") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "[["), "]]"))
		return name, true, name != ""
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"))
		return name, false, name != ""
	}
	return "", false, false
}

// cloneBlock returns a deep copy of a block, including its lines.
func cloneBlock(block *tomlBlock) *tomlBlock {
	if block == nil {
		return nil
	}
	return &tomlBlock{name: block.name, lines: cloneLines(block.lines)}
}

// cloneLines returns a copy of the provided line slice.
func cloneLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// appendBlock appends a block to the output with a single blank line between blocks.
func appendBlock(output *[]string, block []string) {
	trimmed := trimEmptyLines(block)
	if len(trimmed) == 0 {
		return
	}
	if len(*output) > 0 && (*output)[len(*output)-1] != "" {
		*output = append(*output, "")
	}
	*output = append(*output, trimmed...)
}

// trimEmptyLines removes leading and trailing blank lines from a block.
func trimEmptyLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// trimTrailingEmptyLines removes trailing blank lines from the output.
func trimTrailingEmptyLines(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

// extraSectionBlocks returns non-template section blocks sorted by name.
func extraSectionBlocks(sections map[string]*tomlBlock, templateSections map[string]*tomlBlock) []*tomlBlock {
	extra := make([]*tomlBlock, 0)
	for name, block := range sections {
		if _, exists := templateSections[name]; exists {
			continue
		}
		extra = append(extra, cloneBlock(block))
	}
	sort.Slice(extra, func(i, j int) bool {
		return extra[i].name < extra[j].name
	})
	return extra
}

// extraArrayBlocks returns non-patch array-of-table blocks, preserving
// their original order within each name.
func extraArrayBlocks(arrays map[string][]*tomlBlock) []*tomlBlock {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		if name == "patch" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	extra := make([]*tomlBlock, 0)
	for _, name := range names {
		for _, block := range arrays[name] {
			extra = append(extra, cloneBlock(block))
		}
	}
	return extra
}

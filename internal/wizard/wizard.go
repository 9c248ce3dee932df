package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/messages"
)

var (
	loadTemplateConfigFunc = config.LoadTemplateConfig
	errWizardBack          = errors.New("wizard back requested")
	errWizardCancelled     = errors.New("wizard cancelled")
)

// previewMaxLines caps the rendered diff shown on the preview screen.
const previewMaxLines = 60

// Run starts the interactive wizard for the repository at root.
func Run(root string, ui UI) error {
	return RunWithWriter(root, ui, os.Stdout)
}

// RunWithWriter starts the interactive wizard and writes user-facing output to out.
func RunWithWriter(root string, ui UI, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}
	paths := config.DefaultPaths(root)

	current, existing, err := readCurrentConfig(paths.ConfigPath)
	if err != nil {
		return err
	}

	templateCfg, err := loadTemplateConfigFunc()
	if err != nil {
		return fmt.Errorf(messages.WizardReadTemplateFailedFmt, err)
	}

	env := flowEnv{template: choicesFromConfig(templateCfg), existing: existing}
	env.patchFiles, err = listPatchFiles(paths.PatchesDir)
	if err != nil {
		return err
	}

	choices := env.template.Clone()
	if env.existing != nil {
		choices = env.existing.Clone()
	}

	if err := promptWizardFlow(ui, choices, env); err != nil {
		if errors.Is(err, errWizardCancelled) || errors.Is(err, errWizardBack) {
			_, _ = fmt.Fprint(out, messages.WizardCancelled)
			return nil
		}
		return err
	}

	if err := confirmAndApply(root, paths.ConfigPath, ui, choices, current, out); err != nil {
		if errors.Is(err, errWizardCancelled) || errors.Is(err, errWizardBack) {
			_, _ = fmt.Fprint(out, messages.WizardCancelled)
			return nil
		}
		return err
	}
	return nil
}

// readCurrentConfig loads the existing config file, when present, both as raw
// text (for the rewrite preview) and leniently parsed (to prefill answers).
// A missing file yields empty content and nil choices; a file the lenient
// loader cannot parse is a hard error.
func readCurrentConfig(path string) (string, *Choices, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf(messages.WizardLoadConfigFailedFmt, err)
	}
	cfg, err := config.ParseConfigLenient(data, path)
	if err != nil {
		return "", nil, fmt.Errorf(messages.WizardLoadConfigFailedFmt, err)
	}
	return string(data), choicesFromConfig(cfg), nil
}

// listPatchFiles returns the unified diff files under the patches directory,
// sorted by name. A missing directory is treated as empty.
func listPatchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.WizardListPatchesFailedFmt, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".patch", ".diff":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

type flowEnv struct {
	template   *Choices
	existing   *Choices // nil when no config exists yet
	patchFiles []string
}

type wizardFlowStep int

const (
	wizardFlowStepStart wizardFlowStep = iota
	wizardFlowStepFramework
	wizardFlowStepLayout
	wizardFlowStepModule
	wizardFlowStepPatches
)

// promptWizardFlow walks the steps in order, snapshotting choices before each
// so Esc restores the previous step's state. Esc on the first step asks
// whether to exit.
func promptWizardFlow(ui UI, choices *Choices, env flowEnv) error {
	step := wizardFlowStepStart
	for {
		snapshot := choices.Clone()
		var err error

		switch step {
		case wizardFlowStepStart:
			err = promptStart(ui, choices, env)
		case wizardFlowStepFramework:
			err = promptFramework(ui, choices)
		case wizardFlowStepLayout:
			err = promptLayout(ui, choices)
		case wizardFlowStepModule:
			err = promptModule(ui, choices)
		case wizardFlowStepPatches:
			err = promptPatches(ui, choices, env.patchFiles)
		default:
			return nil
		}

		if err == nil {
			if step == wizardFlowStepPatches {
				return nil
			}
			step++
			continue
		}

		if !errors.Is(err, errWizardBack) {
			return err
		}

		if snapshot != nil {
			*choices = *snapshot
		}

		if step == wizardFlowStepStart {
			exit, confirmErr := confirmWizardExitOnFirstStepEscape(ui)
			if confirmErr != nil {
				return confirmErr
			}
			if exit {
				return errWizardCancelled
			}
			continue
		}

		step--
	}
}

func confirmWizardExitOnFirstStepEscape(ui UI) (bool, error) {
	exit := true
	if err := ui.Confirm(messages.WizardExitPrompt, &exit); err != nil {
		if errors.Is(err, errWizardBack) {
			return false, nil
		}
		return false, err
	}
	return exit, nil
}

// promptStart shows the intro and, when a config already exists, lets the
// user choose between editing it and starting from the template defaults.
func promptStart(ui UI, choices *Choices, env flowEnv) error {
	if err := ui.Note(messages.WizardIntroTitle, messages.WizardIntroBody); err != nil {
		return err
	}
	if env.existing == nil {
		return nil
	}
	start := messages.WizardPromptStartExisting
	options := []string{messages.WizardPromptStartExisting, messages.WizardPromptStartFresh}
	if err := ui.Select(messages.WizardPromptStartTitle, options, &start); err != nil {
		return err
	}
	if start == messages.WizardPromptStartFresh {
		*choices = *env.template.Clone()
	} else {
		*choices = *env.existing.Clone()
	}
	return nil
}

func promptFramework(ui UI, choices *Choices) error {
	if err := promptRequired(ui, messages.WizardPromptFrameworkURL, messages.WizardHintFrameworkURL, &choices.URL); err != nil {
		return err
	}
	if err := promptRequired(ui, messages.WizardPromptRevision, messages.WizardHintRevision, &choices.Revision); err != nil {
		return err
	}
	if err := promptRelativePath(ui, messages.WizardPromptSubdir, messages.WizardHintSubdir, &choices.Subdir); err != nil {
		return err
	}
	return promptRelativePath(ui, messages.WizardPromptDest, messages.WizardHintDest, &choices.Dest)
}

func promptLayout(ui UI, choices *Choices) error {
	customize := choices.hasLayoutOverrides()
	if err := ui.Confirm(messages.WizardPromptAdvanced, &customize); err != nil {
		return err
	}
	if !customize {
		choices.Scratch = config.DefaultScratch
		choices.ModulesDir = config.DefaultModulesDir
		choices.TestsDir = config.DefaultTestsDir
		return nil
	}
	if err := promptRelativePath(ui, messages.WizardPromptScratch, messages.WizardHintScratch, &choices.Scratch); err != nil {
		return err
	}
	if err := promptRelativePath(ui, messages.WizardPromptModulesDir, messages.WizardHintModulesDir, &choices.ModulesDir); err != nil {
		return err
	}
	return promptRelativePath(ui, messages.WizardPromptTestsDir, messages.WizardHintTestsDir, &choices.TestsDir)
}

func promptModule(ui UI, choices *Choices) error {
	for {
		if err := promptRequired(ui, messages.WizardPromptModuleName, messages.WizardHintModuleName, &choices.ModuleName); err != nil {
			return err
		}
		if !strings.ContainsAny(choices.ModuleName, "/\\") {
			break
		}
		if err := ui.Note(messages.WizardPromptModuleName, messages.WizardModuleNameOneElement); err != nil {
			return err
		}
	}
	if err := promptRelativePath(ui, messages.WizardPromptModuleSource, messages.WizardHintModuleSource, &choices.ModuleSource); err != nil {
		return err
	}
	return promptRelativePath(ui, messages.WizardPromptModuleTests, messages.WizardHintModuleTests, &choices.ModuleTests)
}

// promptPatches lets the user pick which patch files apply. Strip values from
// previously configured entries are kept when the file stays selected.
func promptPatches(ui UI, choices *Choices, patchFiles []string) error {
	if len(patchFiles) == 0 {
		choices.Patches = nil
		return ui.Note(messages.WizardPromptPatchesTitle, messages.WizardPatchesNoneAvailable)
	}

	available := make(map[string]bool, len(patchFiles))
	for _, f := range patchFiles {
		available[f] = true
	}
	previous := make(map[string]PatchChoice, len(choices.Patches))
	selected := make([]string, 0, len(choices.Patches))
	for _, p := range choices.Patches {
		previous[p.File] = p
		if available[p.File] {
			selected = append(selected, p.File)
		}
	}

	if err := ui.MultiSelect(messages.WizardPromptPatchesTitle, patchFiles, &selected); err != nil {
		return err
	}

	chosen := make(map[string]bool, len(selected))
	for _, f := range selected {
		chosen[f] = true
	}
	next := make([]PatchChoice, 0, len(selected))
	for _, f := range patchFiles {
		if !chosen[f] {
			continue
		}
		if p, ok := previous[f]; ok {
			next = append(next, p)
			continue
		}
		next = append(next, PatchChoice{File: f})
	}
	choices.Patches = next
	return nil
}

func promptRequired(ui UI, title, description string, value *string) error {
	for {
		if err := ui.Input(title, description, value); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed != "" {
			*value = trimmed
			return nil
		}
		if err := ui.Note(title, fmt.Sprintf(messages.WizardValueRequiredFmt, title)); err != nil {
			return err
		}
	}
}

func promptRelativePath(ui UI, title, description string, value *string) error {
	for {
		if err := promptRequired(ui, title, description, value); err != nil {
			return err
		}
		clean := filepath.Clean(*value)
		if !filepath.IsAbs(*value) && clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return nil
		}
		if err := ui.Note(title, messages.WizardPathMustBeRelative); err != nil {
			return err
		}
	}
}

// confirmAndApply shows the summary and rewrite preview, asks for
// confirmation, and writes the rendered config.
func confirmAndApply(root, configPath string, ui UI, choices *Choices, current string, out io.Writer) error {
	if err := ui.Note(messages.WizardSummaryTitle, buildSummary(choices)); err != nil {
		return err
	}

	rendered, err := RenderConfig(current, choices)
	if err != nil {
		return fmt.Errorf(messages.WizardRenderConfigFailedFmt, err)
	}

	if err := ui.Note(messages.WizardPreviewTitle, buildRewritePreview(current, rendered)); err != nil {
		return err
	}

	confirmApply := true
	if err := ui.Confirm(messages.WizardPromptConfirmApply, &confirmApply); err != nil {
		return err
	}
	if !confirmApply {
		_, _ = fmt.Fprint(out, messages.WizardCancelled)
		return nil
	}

	if err := writeConfig(configPath, rendered, current != ""); err != nil {
		return err
	}

	rel := configPath
	if r, relErr := filepath.Rel(root, configPath); relErr == nil {
		rel = filepath.ToSlash(r)
	}
	_, _ = color.New(color.FgGreen).Fprintf(out, messages.WizardCompleteFmt, rel)
	_, _ = fmt.Fprintln(out, messages.WizardNextSteps)
	return nil
}

func buildSummary(choices *Choices) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(messages.WizardSummaryFrameworkFmt, choices.URL, choices.Revision, choices.Subdir, choices.Dest))
	if choices.hasLayoutOverrides() {
		b.WriteString(fmt.Sprintf(messages.WizardSummaryLayoutFmt, choices.Scratch, choices.ModulesDir, choices.TestsDir))
	}
	b.WriteString(fmt.Sprintf(messages.WizardSummaryModuleFmt, choices.ModuleName, choices.ModuleSource, choices.ModuleTests))
	b.WriteString(messages.WizardSummaryPatchesHeader)
	if len(choices.Patches) == 0 {
		b.WriteString(messages.WizardSummaryNone)
		return b.String()
	}
	for _, p := range choices.Patches {
		b.WriteString(fmt.Sprintf(messages.WizardSummaryPatchItemFmt, p.File, p.stripCount()))
	}
	return b.String()
}

// buildRewritePreview renders a unified diff between the current file content
// and the proposed rewrite, truncated to previewMaxLines.
func buildRewritePreview(current, rendered string) string {
	diff := strings.TrimSpace(udiff.Unified(
		".devbed/config.toml (current)",
		".devbed/config.toml (proposed)",
		current,
		rendered,
	))
	if diff == "" {
		return messages.WizardPreviewNoChanges
	}
	lines := strings.Split(diff, "\n")
	if len(lines) > previewMaxLines {
		omitted := len(lines) - previewMaxLines
		lines = append(lines[:previewMaxLines], fmt.Sprintf(messages.WizardPreviewOmittedFmt, omitted))
	}
	return strings.Join(lines, "\n")
}

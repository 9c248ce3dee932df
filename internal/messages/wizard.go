package messages

// Wizard flow text, prompts, and errors.
const (
	WizardIntroTitle = "devbed setup"
	WizardIntroBody  = "Answer a few questions to configure how this repository provisions its framework tree. Enter accepts the shown value; Esc goes back."

	WizardPromptStartTitle    = "Starting point"
	WizardPromptStartExisting = "Edit the current configuration"
	WizardPromptStartFresh    = "Start from the template defaults"

	WizardPromptFrameworkURL = "Framework repository URL"
	WizardHintFrameworkURL   = "Git URL or local path; ~ expands to your home directory."
	WizardPromptRevision     = "Framework revision"
	WizardHintRevision       = "A 40-character commit hash pins the fetch; branches and tags move."
	WizardPromptSubdir       = "Framework subdirectory"
	WizardHintSubdir         = "Directory inside the framework repo that becomes the provisioned tree."
	WizardPromptDest         = "Destination name"
	WizardHintDest           = "The provisioned tree lands at examples/<dest>."
	WizardPromptAdvanced     = "Customize advanced paths (scratch, modules dir, tests dir)?"
	WizardPromptScratch      = "Scratch directory"
	WizardHintScratch        = "Temporary clone location, removed after every fetch."
	WizardPromptModulesDir   = "Modules directory"
	WizardHintModulesDir     = "Where the framework tree expects module sources to be linked."
	WizardPromptTestsDir     = "Tests directory"
	WizardHintTestsDir       = "Where the framework tree expects module tests to be linked."
	WizardPromptModuleName   = "Module name"
	WizardHintModuleName     = "Directory name the links get inside the framework tree."
	WizardPromptModuleSource = "Module source path"
	WizardHintModuleSource   = "Path in this repository the source link points at."
	WizardPromptModuleTests  = "Module tests path"
	WizardHintModuleTests    = "Path in this repository the tests link points at."

	WizardPromptPatchesTitle   = "Patches to apply during provisioning"
	WizardPatchesNoneAvailable = "No patch files found in .devbed/patches; add unified diffs there and re-run the wizard to enable them."
	WizardPromptConfirmApply   = "Write .devbed/config.toml with these settings?"
	WizardExitPrompt           = "Exit the wizard without saving?"

	WizardValueRequiredFmt     = "%s is required"
	WizardPathMustBeRelative   = "Enter a path relative to the repository root, without a leading / or .. segment."
	WizardModuleNameOneElement = "Enter a single directory name without path separators."

	WizardSummaryTitle         = "Configuration summary"
	WizardSummaryFrameworkFmt  = "Framework:\n- url = %s\n- revision = %s\n- subdir = %s\n- dest = %s\n"
	WizardSummaryLayoutFmt     = "\nLayout overrides:\n- scratch = %s\n- modules_dir = %s\n- tests_dir = %s\n"
	WizardSummaryModuleFmt     = "\nModule:\n- name = %s\n- source = %s\n- tests = %s\n"
	WizardSummaryPatchesHeader = "\nPatches:\n"
	WizardSummaryPatchItemFmt  = "- %s (strip %d)\n"
	WizardSummaryNone          = "- (none)\n"

	WizardPreviewTitle      = "Proposed config.toml changes"
	WizardPreviewNoChanges  = "No changes; the current configuration already matches."
	WizardPreviewOmittedFmt = "... (%d more lines)"

	WizardLoadConfigFailedFmt       = "failed to load config: %w"
	WizardReadTemplateFailedFmt     = "read config template: %w"
	WizardRenderConfigFailedFmt     = "render config: %w"
	WizardParseConfigFailedFmt      = "parse config: %w"
	WizardGeneratedConfigInvalidFmt = "generated config failed validation: %w"
	WizardBackupConfigFailedFmt     = "failed to back up config: %w"
	WizardWriteConfigFailedFmt      = "failed to write config: %w"
	WizardListPatchesFailedFmt      = "failed to list patch files: %w"

	WizardCancelled   = "Wizard cancelled; no changes made.\n"
	WizardCompleteFmt = "Wrote %s\n"
	WizardNextSteps   = "Next: run 'devbed up' to provision."
)

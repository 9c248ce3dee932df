package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "devbed"
	// RootShort is the short description for the root command.
	RootShort         = "Devbed CLI"
	RootLong          = "Devbed bootstraps a development environment for a courseware-framework module:\nit fetches the framework at a pinned revision, links this repository's module\nsource and tests into it, and applies local compatibility patches."
	RootVersionFlag   = "Print version and exit"
	RootMissingDevbed = "devbed isn't initialized in this repository (missing .devbed); run 'devbed init' to initialize"
	RootUsageHintFmt  = "Run '%s --help' for usage.\n"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InitUse is the init command name.
	InitUse   = "init"
	InitShort = "Initialize devbed in this repository"

	InitAlreadyInitialized = "devbed is already initialized in this repository; edit .devbed/config.toml directly or run 'devbed wizard'"
	InitRunWizardPrompt    = "Run the setup wizard now? (recommended)"
	InitCompleteFmt        = "Initialized devbed in %s\n"
	InitNextSteps          = "Next: review .devbed/config.toml, then run 'devbed up'."

	InitFlagNoWizard = "Skip prompting to run the setup wizard after init"
	InitFlagForce    = "Overwrite devbed files that already exist with the pristine templates"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt      = "%s [Y/n]: "
	PromptNoDefaultFmt       = "%s [y/N]: "
	PromptInvalidResponseFmt = "invalid response %q"
	PromptRetryYesNo         = "Please enter y or n."

	// WizardUse is the wizard command name.
	WizardUse              = "wizard"
	WizardShort            = "Interactive configuration wizard"
	WizardLong             = "Run the interactive configuration wizard for this repository."
	WizardRequiresTerminal = "wizard requires an interactive terminal"

	// UpUse is the up command name.
	UpUse   = "up"
	UpShort = "Provision the framework tree (idempotent)"

	// CleanUse is the clean command name.
	CleanUse   = "clean"
	CleanShort = "Remove the provisioned framework tree and all fetch artifacts"

	CleanConfirmPromptFmt     = "Remove %s and re-fetchable artifacts?"
	CleanRequiresConfirmation = "clean is destructive and requires confirmation; re-run with --force in non-interactive environments"
	CleanAborted              = "Clean aborted; no changes made."
	CleanFlagForce            = "Remove artifacts without prompting"

	// McpUse is the mcp command name.
	McpUse   = "mcp"
	McpShort = "Run the devbed status MCP server over stdio"
)

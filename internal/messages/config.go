package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt        = "missing config file %s: %w"
	ConfigFailedReadFmt         = "failed to read config %s: %w"
	ConfigFailedReadTemplateFmt = "failed to read template config.toml: %w"
	ConfigInvalidConfigFmt      = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt   = "%s: unrecognized config keys: %w"

	ConfigFrameworkURLRequiredFmt      = "%s: framework.url is required"
	ConfigFrameworkRevisionRequiredFmt = "%s: framework.revision is required"
	ConfigFrameworkSubdirRequiredFmt   = "%s: framework.subdir is required"
	ConfigFrameworkDestRequiredFmt     = "%s: framework.dest is required"
	ConfigModuleNameRequiredFmt        = "%s: module.name is required"
	ConfigModuleSourceRequiredFmt      = "%s: module.source is required"
	ConfigModuleTestsRequiredFmt       = "%s: module.tests is required"
	ConfigPatchFileRequiredFmt         = "%s: patch[%d].file is required"
	ConfigPatchStripInvalidFmt         = "%s: patch[%d].strip must be >= 0 (got %d)"
	ConfigPathAbsoluteFmt              = "%s: %s must be a relative path (got %q)"
	ConfigPathEscapesFmt               = "%s: %s must not escape its base directory (got %q)"
	ConfigDestScratchConflictFmt       = "%s: framework.dest and framework.scratch must differ (both %q)"
	ConfigModuleNameElementFmt         = "%s: module.name must be a single path element (got %q)"
	ConfigExpandHomeFmt                = "expand ~ in framework.url %q: %w"

	// ConfigValidationGuidance is appended to validation errors to direct users to repair tools.
	ConfigValidationGuidance = "(run 'devbed wizard' to fix or 'devbed doctor' to diagnose)"
)

package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check provisioning health and common misconfigurations"

	DoctorHealthCheckFmt = "🏥 Checking devbed health in %s...\n"

	DoctorCheckNameStructure = "Structure"
	DoctorCheckNameConfig    = "Config"
	DoctorCheckNameGit       = "Git"
	DoctorCheckNameRevision  = "Revision"
	DoctorCheckNameProvision = "Provision"
	DoctorCheckNameLinks     = "Links"
	DoctorCheckNamePatches   = "Patches"

	DoctorMissingRequiredDirFmt       = "Missing required directory: %s"
	DoctorMissingRequiredDirRecommend = "Run `devbed init` to initialize this repository."
	DoctorPathNotDirFmt               = "%s exists but is not a directory"
	DoctorPathNotDirRecommend         = "Move or remove the conflicting entry, then run `devbed init`."
	DoctorDirExistsFmt                = "Directory exists: %s"

	DoctorConfigLoadFailedFmt = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend = "Check .devbed/config.toml for missing or malformed fields, or run `devbed wizard`."
	DoctorConfigLoaded        = "Configuration loaded successfully"

	DoctorGitMissingFmt       = "git not found: %v"
	DoctorGitMissingRecommend = "Install git and make sure it is on PATH."
	DoctorGitFoundFmt         = "git available: %s"

	DoctorRevisionPinnedFmt         = "Revision pinned to %s"
	DoctorRevisionUnpinnedFmt       = "framework.revision %q is not a full commit hash"
	DoctorRevisionUnpinnedRecommend = "Pin framework.revision to a 40-character commit hash for reproducible fetches."

	DoctorNotProvisioned                  = "Not provisioned; run `devbed up`."
	DoctorProvisionedFmt                  = "Provisioned at %s (revision %s)"
	DoctorProvisionStaleFmt               = "Provision marker present but %s is missing"
	DoctorProvisionStaleRecommend         = "Run `devbed up` to re-provision."
	DoctorProvisionUnmanagedFmt           = "%s exists but no provision marker records it"
	DoctorProvisionUnmanagedRecommend     = "Move or remove the directory, then run `devbed up`."
	DoctorProvisionRevisionDriftFmt       = "Marker revision %s does not match configured revision %s"
	DoctorProvisionRevisionDriftRecommend = "Run `devbed clean` and `devbed up` to fetch the configured revision."
	DoctorProvisionMarkerInvalidFmt       = "Provision marker is unreadable: %v"
	DoctorProvisionMarkerInvalidRecommend = "Run `devbed clean` and `devbed up` to rebuild the marker."
	DoctorProvisionInspectFailedFmt       = "Failed to inspect provision state: %v"

	DoctorLinkOKFmt                = "Link in place: %s -> %s"
	DoctorLinkMissingFmt           = "Missing link: %s"
	DoctorLinkMissingRecommend     = "Run `devbed clean` and `devbed up` to reinstall links."
	DoctorLinkNotSymlinkFmt        = "%s exists but is not a symlink"
	DoctorLinkNotSymlinkRecommend  = "Move or remove the entry, then run `devbed clean` and `devbed up`."
	DoctorLinkWrongTargetFmt       = "Link %s points at %s (expected %s)"
	DoctorLinkWrongTargetRecommend = "Run `devbed clean` and `devbed up` to reinstall links."
	DoctorLinkBrokenFmt            = "Link %s target %s does not exist"
	DoctorLinkBrokenRecommend      = "Restore the module directory or update .devbed/config.toml."
	DoctorLinksNotProvisioned      = "Links not checked; tree is not provisioned."

	DoctorPatchMissingFmt          = "Patch file missing: %s"
	DoctorPatchMissingRecommend    = "Restore the patch file or remove its [[patch]] entry from config.toml."
	DoctorPatchInvalidFmt          = "Patch %s is not a valid unified diff: %v"
	DoctorPatchInvalidRecommend    = "Regenerate the patch as a unified diff (git diff --no-index old new)."
	DoctorPatchChangedFmt          = "Patch %s changed since it was applied"
	DoctorPatchChangedRecommend    = "Run `devbed clean` and `devbed up` to re-apply the updated patch."
	DoctorPatchNotAppliedFmt       = "Patch %s is configured but was not applied by the recorded run"
	DoctorPatchNotAppliedRecommend = "Run `devbed clean` and `devbed up` to apply it."
	DoctorPatchOKFmt               = "Patch parsed: %s (%d file(s))"
	DoctorNoPatches                = "No patches configured."

	DoctorFailureSummary = "❌ Some checks failed or triggered warnings. Please address the items above."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "✅ All systems go. devbed is ready."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "         "
)

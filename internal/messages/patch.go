package messages

// Patch messages for parsing and applying unified diffs.
const (
	// PatchReadFailedFmt formats patch file read errors.
	PatchReadFailedFmt  = "read patch %s: %w"
	PatchParseFailedFmt = "parse patch %s: %w"
	PatchEmpty          = "patch contains no file changes"
	PatchLineErrorFmt   = "line %d: %s"

	PatchBadHunkHeader     = "malformed hunk header"
	PatchMissingNewHeader  = "--- header without +++ line"
	PatchHunkBeforeHeader  = "hunk before any file header"
	PatchBadHunkLineFmt    = "unexpected hunk line prefix %q"
	PatchTruncatedHunk     = "patch ends mid-hunk"
	PatchStripTooDeepFmt   = "cannot strip %d components from %q"
	PatchPathEscapesFmt    = "patch path %q escapes the target tree"
	PatchCheckFailedFmt    = "patch %s does not apply cleanly: %w"
	PatchApplyFailedFmt    = "apply patch %s: %w"
	PatchAlreadyAppliedFmt = "patch %s appears to be already applied"

	// PatchConflictFileMissingFmt reports a conflict against a file absent from the tree.
	PatchConflictFileMissingFmt  = "%s: target %s does not exist in the provisioned tree"
	PatchConflictCreateExistsFmt = "%s: %s already exists but the patch creates it"
	PatchConflictReadTargetFmt   = "%s: read target %s: %v"
	PatchConflictHunkFmt         = "%s: hunk %d does not match %s:"
	PatchConflictExpectedName    = "patch expects"
	PatchConflictActualName      = "tree has"
	PatchConflictTruncatedFmt    = "... (mismatch truncated to %d lines)"
)

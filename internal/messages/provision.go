package messages

// Provision messages for the fetch/link/patch pipeline and its state tracking.
const (
	// ProvisionConfigRequired indicates the provisioner was built without a config.
	ProvisionConfigRequired = "provision config is required"
	ProvisionRootRequired   = "provision root is required"

	ProvisionOpenLockFmt    = "open lock %s: %w"
	ProvisionLockFmt        = "lock %s: %w"
	ProvisionLockTimeoutFmt = "timed out waiting for provision lock after %s"
	ProvisionLockHeld       = "another devbed process holds the provision lock"

	// MarkerReadFmt formats marker read failures.
	MarkerReadFmt              = "read provision marker %s: %w"
	MarkerParseFmt             = "parse provision marker %s: %w"
	MarkerWriteFmt             = "write provision marker %s: %w"
	MarkerInvalidFmt           = "invalid provision marker %s: %w"
	MarkerSchemaVersionFmt     = "unsupported schema_version %d (expected %d)"
	MarkerRevisionRequired     = "revision is required"
	MarkerDestRequired         = "dest is required"
	MarkerProvisionedAtInvalid = "provisioned_at is not a valid RFC 3339 timestamp"

	// StateUnmanagedTreeFmt is returned when the destination exists without a marker.
	StateUnmanagedTreeFmt = "%s exists but no provision marker records it; an interrupted run may have left it, or it is not devbed's tree (move or remove it, then re-run)"
	StateStaleMarkerFmt   = "Provision marker found but %s is missing; re-provisioning.\n"

	// FetchCloneFmt formats clone failures.
	FetchCloneFmt         = "clone %s: %w"
	FetchCheckoutFmt      = "checkout %s: %w"
	FetchSubdirMissingFmt = "fetched tree has no %s directory (looked in %s)"
	FetchSubdirNotDirFmt  = "%s in the fetched tree is not a directory"
	FetchMoveFmt            = "move %s to %s: %w"
	FetchScratchLeftoverFmt = "Removing leftover scratch %s from an interrupted run\n"
	FetchCreateParentFmt    = "create %s: %w"
	FetchRemoveScratchFmt   = "remove scratch dir %s: %w"

	// LinkTargetMissingFmt is returned when the repository-side link target is absent.
	LinkTargetMissingFmt = "link target %s does not exist"
	LinkTargetNotDirFmt  = "link target %s is not a directory"
	LinkParentMissingFmt = "link directory %s is missing from the fetched tree; the framework layout may have changed"
	LinkParentNotDirFmt  = "link directory %s in the fetched tree is not a directory"
	LinkRelFmt           = "compute relative path from %s to %s: %w"
	LinkCreateFmt        = "create symlink %s: %w"
	LinkConflictFmt      = "%s already exists; devbed will not overwrite it (move or remove it, then re-run)"
	LinkInspectExistsFmt = "check %s: %w"
	LinkedFmt            = "Linked %s -> %s\n"

	// CleanRemovedFmt reports one removed artifact during clean.
	CleanRemovedFmt       = "Removed %s\n"
	CleanNothingToDo      = "Nothing to clean; no devbed artifacts found.\n"
	CleanRemoveFmt        = "remove %s: %w"
	CleanUnmanagedTreeFmt = "refusing to remove %s: no provision marker records it (remove it manually if it is safe to delete)"
	CleanComplete         = "Clean complete.\n"

	// UpAlreadyProvisionedFmt reports an idempotent no-op run.
	UpAlreadyProvisionedFmt = "Already provisioned at %s (revision %s); nothing to do.\n"
	UpFetchingFmt           = "Fetching %s at %s...\n"
	UpFetchedFmt            = "Fetched framework into %s\n"
	UpPatchCountFmt         = "Applying %d patch(es)...\n"
	UpPatchAppliedFmt       = "Applied %s\n"
	UpNoPatches             = "No patches configured; skipping patch step.\n"
	UpCompleteFmt           = "Provisioned %s at revision %s.\n"
)

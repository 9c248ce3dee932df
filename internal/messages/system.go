package messages

// System messages for internal operations.
const (
	// RootStartPathRequired indicates start path is required for root resolution.
	RootStartPathRequired   = "start path is required"
	RootPathNotDirFmt       = "%s exists but is not a directory; move or remove it and retry"
	RootPathNotDirOrFileFmt = "%s exists but is not a directory or file"

	// FsutilCreateTempFileFmt formats temp file creation errors.
	FsutilCreateTempFileFmt = "create temp file for %s: %w"
	FsutilSetPermissionsFmt = "set permissions for %s: %w"
	FsutilWriteTempFileFmt  = "write temp file for %s: %w"
	FsutilCloseTempFileFmt  = "close temp file for %s: %w"
	FsutilRenameTempFileFmt = "rename temp file for %s: %w"

	// GitNotFound indicates the git executable is missing from PATH.
	GitNotFound         = "git executable not found in PATH; install git and retry"
	GitCommandFailedFmt = "git %s: %w\n%s"
	GitEmptyOutputFmt   = "git %s: empty output"

	// McpRunServerFailedFmt formats MCP status server failures.
	McpRunServerFailedFmt = "failed to run MCP status server: %w"
)

package messages

// Install messages for writing the initial .devbed tree.
const (
	// InstallRootRequired indicates the installer was invoked without a repository root.
	InstallRootRequired   = "install root is required"
	InstallSystemRequired = "install system is required"

	InstallCreateDirFmt    = "create %s: %w"
	InstallStatFmt         = "stat %s: %w"
	InstallReadTemplateFmt = "read template %s: %w"
	InstallWriteFileFmt    = "write %s: %w"
)

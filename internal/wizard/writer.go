package wizard

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/fsutil"
	"github.com/oliworks/devbed/internal/messages"
)

// writeConfig validates rendered config content and writes it to path.
// When backup is true the previous file is saved alongside as path.bak
// before the new content replaces it.
func writeConfig(path string, content string, backup bool) error {
	if _, err := toml.LoadBytes([]byte(content)); err != nil {
		return fmt.Errorf(messages.WizardGeneratedConfigInvalidFmt, err)
	}
	if _, err := config.ParseConfig([]byte(content), path); err != nil {
		return fmt.Errorf(messages.WizardGeneratedConfigInvalidFmt, err)
	}

	if backup {
		previous, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf(messages.WizardBackupConfigFailedFmt, err)
		}
		if err := fsutil.WriteFileAtomic(path+".bak", previous, 0o644); err != nil {
			return fmt.Errorf(messages.WizardBackupConfigFailedFmt, err)
		}
	}

	if err := fsutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf(messages.WizardWriteConfigFailedFmt, err)
	}
	return nil
}

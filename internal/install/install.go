// Package install writes the initial .devbed tree during `devbed init`.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/templates"
)

// Options controls installer behavior.
type Options struct {
	// Overwrite replaces existing files with the pristine templates. Without
	// it existing files are left untouched and only missing ones are seeded.
	Overwrite bool
	System    System
}

type installer struct {
	root      string
	overwrite bool
	sys       System
}

// Run seeds the repository at root with the embedded .devbed templates:
// config.toml, the patches directory with its README, and the state
// directory with a .gitignore keeping its runtime files out of version
// control.
func Run(root string, opts Options) error {
	if root == "" {
		return errors.New(messages.InstallRootRequired)
	}
	if opts.System == nil {
		return errors.New(messages.InstallSystemRequired)
	}
	inst := &installer{
		root:      root,
		overwrite: opts.Overwrite,
		sys:       opts.System,
	}
	return inst.installTemplates()
}

// installTemplates mirrors the embedded template tree into .devbed. Walk
// visits parents before children, so directories exist before the files
// inside them are written.
func (inst *installer) installTemplates() error {
	return templates.Walk(".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dest := inst.destPath(name)
		if entry.IsDir() {
			if mkErr := inst.sys.MkdirAll(dest, 0o755); mkErr != nil {
				return fmt.Errorf(messages.InstallCreateDirFmt, dest, mkErr)
			}
			return nil
		}
		if !inst.overwrite {
			if _, statErr := inst.sys.Stat(dest); statErr == nil {
				return nil
			} else if !errors.Is(statErr, os.ErrNotExist) {
				return fmt.Errorf(messages.InstallStatFmt, dest, statErr)
			}
		}
		data, readErr := templates.Read(name)
		if readErr != nil {
			return fmt.Errorf(messages.InstallReadTemplateFmt, name, readErr)
		}
		if writeErr := inst.sys.WriteFileAtomic(dest, data, 0o644); writeErr != nil {
			return fmt.Errorf(messages.InstallWriteFileFmt, dest, writeErr)
		}
		return nil
	})
}

// destPath maps a template-relative name to its location under .devbed.
func (inst *installer) destPath(name string) string {
	if name == "." {
		return filepath.Join(inst.root, ".devbed")
	}
	return filepath.Join(inst.root, ".devbed", filepath.FromSlash(name))
}

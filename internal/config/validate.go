package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oliworks/devbed/internal/messages"
)

// Validate ensures the config is complete and consistent.
// path is the config source used in error messages.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.Framework.URL) == "" {
		return fmt.Errorf(messages.ConfigFrameworkURLRequiredFmt, path)
	}
	if strings.TrimSpace(c.Framework.Revision) == "" {
		return fmt.Errorf(messages.ConfigFrameworkRevisionRequiredFmt, path)
	}
	if strings.TrimSpace(c.Framework.Subdir) == "" {
		return fmt.Errorf(messages.ConfigFrameworkSubdirRequiredFmt, path)
	}
	if strings.TrimSpace(c.Framework.Dest) == "" {
		return fmt.Errorf(messages.ConfigFrameworkDestRequiredFmt, path)
	}
	if strings.TrimSpace(c.Module.Name) == "" {
		return fmt.Errorf(messages.ConfigModuleNameRequiredFmt, path)
	}
	if strings.TrimSpace(c.Module.Source) == "" {
		return fmt.Errorf(messages.ConfigModuleSourceRequiredFmt, path)
	}
	if strings.TrimSpace(c.Module.Tests) == "" {
		return fmt.Errorf(messages.ConfigModuleTestsRequiredFmt, path)
	}

	relativeFields := []struct {
		key   string
		value string
	}{
		{"framework.subdir", c.Framework.Subdir},
		{"framework.dest", c.Framework.Dest},
		{"framework.scratch", c.Framework.Scratch},
		{"framework.modules_dir", c.Framework.ModulesDir},
		{"framework.tests_dir", c.Framework.TestsDir},
		{"module.source", c.Module.Source},
		{"module.tests", c.Module.Tests},
	}
	for _, field := range relativeFields {
		if err := requireRelative(path, field.key, field.value); err != nil {
			return err
		}
	}

	if filepath.Clean(c.Framework.Dest) == filepath.Clean(c.Framework.Scratch) {
		return fmt.Errorf(messages.ConfigDestScratchConflictFmt, path, c.Framework.Dest)
	}
	if strings.ContainsRune(c.Module.Name, '/') || strings.ContainsRune(c.Module.Name, filepath.Separator) {
		return fmt.Errorf(messages.ConfigModuleNameElementFmt, path, c.Module.Name)
	}

	for i, patch := range c.Patches {
		if strings.TrimSpace(patch.File) == "" {
			return fmt.Errorf(messages.ConfigPatchFileRequiredFmt, path, i)
		}
		if err := requireRelative(path, fmt.Sprintf("patch[%d].file", i), patch.File); err != nil {
			return err
		}
		if patch.Strip != nil && *patch.Strip < 0 {
			return fmt.Errorf(messages.ConfigPatchStripInvalidFmt, path, i, *patch.Strip)
		}
	}

	return nil
}

// requireRelative rejects absolute paths and paths that climb out of their
// containing directory; every configured path is interpreted relative to a
// devbed-managed location.
func requireRelative(path, key, value string) error {
	if filepath.IsAbs(value) {
		return fmt.Errorf(messages.ConfigPathAbsoluteFmt, path, key, value)
	}
	clean := filepath.Clean(value)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf(messages.ConfigPathEscapesFmt, path, key, value)
	}
	return nil
}

// Package config loads and validates .devbed/config.toml.
package config

import (
	"fmt"

	"github.com/mitchellh/go-homedir"

	"github.com/oliworks/devbed/internal/messages"
)

// Default values applied when optional fields are omitted.
const (
	// DefaultScratch is the fetch scratch directory, relative to the examples dir.
	DefaultScratch = ".scratch"
	// DefaultModulesDir is where the framework tree expects linked module sources.
	DefaultModulesDir = "modules"
	// DefaultTestsDir is where the framework tree expects linked module tests.
	DefaultTestsDir = "tests/ext"
	// DefaultStrip is the path components stripped when applying a patch.
	DefaultStrip = 1
)

// Config models .devbed/config.toml.
type Config struct {
	Framework FrameworkConfig `toml:"framework"`
	Module    ModuleConfig    `toml:"module"`
	Patches   []PatchConfig   `toml:"patch"`
}

// FrameworkConfig describes where the framework comes from and where the
// provisioned tree lands.
type FrameworkConfig struct {
	URL        string `toml:"url"`
	Revision   string `toml:"revision"`
	Subdir     string `toml:"subdir"`
	Dest       string `toml:"dest"`
	Scratch    string `toml:"scratch"`
	ModulesDir string `toml:"modules_dir"`
	TestsDir   string `toml:"tests_dir"`
}

// ModuleConfig names the repository-side module the provisioned tree links to.
type ModuleConfig struct {
	Name   string `toml:"name"`
	Source string `toml:"source"`
	Tests  string `toml:"tests"`
}

// PatchConfig names one unified diff under .devbed/patches.
// Strip is a pointer so an omitted value can be told apart from an explicit 0.
type PatchConfig struct {
	File  string `toml:"file"`
	Strip *int   `toml:"strip"`
}

// StripCount returns the effective -p value for the patch.
func (p PatchConfig) StripCount() int {
	if p.Strip == nil {
		return DefaultStrip
	}
	return *p.Strip
}

// applyDefaults fills optional fields that were omitted from the TOML.
func (c *Config) applyDefaults() {
	if c.Framework.Scratch == "" {
		c.Framework.Scratch = DefaultScratch
	}
	if c.Framework.ModulesDir == "" {
		c.Framework.ModulesDir = DefaultModulesDir
	}
	if c.Framework.TestsDir == "" {
		c.Framework.TestsDir = DefaultTestsDir
	}
}

// expandURL resolves a leading ~ in framework.url so local framework
// checkouts can be referenced from any machine.
func (c *Config) expandURL() error {
	expanded, err := homedir.Expand(c.Framework.URL)
	if err != nil {
		return fmt.Errorf(messages.ConfigExpandHomeFmt, c.Framework.URL, err)
	}
	c.Framework.URL = expanded
	return nil
}

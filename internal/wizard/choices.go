package wizard

import (
	"github.com/oliworks/devbed/internal/config"
)

// Choices holds the wizard's collected answers. One instance is threaded
// through the flow steps and snapshotted per step for back navigation.
type Choices struct {
	URL      string
	Revision string
	Subdir   string
	Dest     string

	// Layout overrides; the loaders fill defaults in, so a value equal to
	// its default renders as a commented template line.
	Scratch    string
	ModulesDir string
	TestsDir   string

	ModuleName   string
	ModuleSource string
	ModuleTests  string

	Patches []PatchChoice
}

// PatchChoice names one selected patch file. Strip mirrors config.PatchConfig:
// nil means the default and is omitted from the rendered config.
type PatchChoice struct {
	File  string
	Strip *int
}

func (p PatchChoice) stripCount() int {
	if p.Strip == nil {
		return config.DefaultStrip
	}
	return *p.Strip
}

// choicesFromConfig seeds a Choices from a loaded (possibly lenient) config.
func choicesFromConfig(cfg *config.Config) *Choices {
	c := &Choices{
		URL:          cfg.Framework.URL,
		Revision:     cfg.Framework.Revision,
		Subdir:       cfg.Framework.Subdir,
		Dest:         cfg.Framework.Dest,
		Scratch:      cfg.Framework.Scratch,
		ModulesDir:   cfg.Framework.ModulesDir,
		TestsDir:     cfg.Framework.TestsDir,
		ModuleName:   cfg.Module.Name,
		ModuleSource: cfg.Module.Source,
		ModuleTests:  cfg.Module.Tests,
	}
	for _, p := range cfg.Patches {
		c.Patches = append(c.Patches, PatchChoice{File: p.File, Strip: p.Strip})
	}
	return c
}

// Clone returns a deep copy for step snapshots.
func (c *Choices) Clone() *Choices {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Patches = make([]PatchChoice, len(c.Patches))
	for i, p := range c.Patches {
		clone.Patches[i] = p
		if p.Strip != nil {
			strip := *p.Strip
			clone.Patches[i].Strip = &strip
		}
	}
	return &clone
}

// hasLayoutOverrides reports whether any layout directory differs from its default.
func (c *Choices) hasLayoutOverrides() bool {
	return c.Scratch != config.DefaultScratch ||
		c.ModulesDir != config.DefaultModulesDir ||
		c.TestsDir != config.DefaultTestsDir
}

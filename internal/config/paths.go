package config

import "path/filepath"

// Paths holds resolved paths for devbed files and directories.
type Paths struct {
	Root        string
	ConfigPath  string
	PatchesDir  string
	StateDir    string
	MarkerPath  string
	LockPath    string
	ExamplesDir string
}

// DefaultPaths returns the default devbed paths for a repo root.
func DefaultPaths(root string) Paths {
	return Paths{
		Root:        root,
		ConfigPath:  filepath.Join(root, ".devbed", "config.toml"),
		PatchesDir:  filepath.Join(root, ".devbed", "patches"),
		StateDir:    filepath.Join(root, ".devbed", "state"),
		MarkerPath:  filepath.Join(root, ".devbed", "state", "provision.json"),
		LockPath:    filepath.Join(root, ".devbed", "state", "provision.lock"),
		ExamplesDir: filepath.Join(root, "examples"),
	}
}

// DestDir returns the absolute path of the provisioned framework tree.
func (p Paths) DestDir(cfg *Config) string {
	return filepath.Join(p.ExamplesDir, cfg.Framework.Dest)
}

// ScratchDir returns the absolute path of the fetch scratch directory.
func (p Paths) ScratchDir(cfg *Config) string {
	return filepath.Join(p.ExamplesDir, cfg.Framework.Scratch)
}

// PatchPath returns the absolute path of a configured patch file.
func (p Paths) PatchPath(file string) string {
	return filepath.Join(p.PatchesDir, file)
}

// SourceLinkPath returns where the module source symlink lives inside the
// provisioned tree.
func (p Paths) SourceLinkPath(cfg *Config) string {
	return filepath.Join(p.DestDir(cfg), filepath.FromSlash(cfg.Framework.ModulesDir), cfg.Module.Name)
}

// TestsLinkPath returns where the module tests symlink lives inside the
// provisioned tree.
func (p Paths) TestsLinkPath(cfg *Config) string {
	return filepath.Join(p.DestDir(cfg), filepath.FromSlash(cfg.Framework.TestsDir), cfg.Module.Name)
}

// SourceTargetPath returns the repository path the source symlink points at.
func (p Paths) SourceTargetPath(cfg *Config) string {
	return filepath.Join(p.Root, filepath.FromSlash(cfg.Module.Source))
}

// TestsTargetPath returns the repository path the tests symlink points at.
func (p Paths) TestsTargetPath(cfg *Config) string {
	return filepath.Join(p.Root, filepath.FromSlash(cfg.Module.Tests))
}

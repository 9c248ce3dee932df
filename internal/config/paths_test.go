package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths("/repo")
	if paths.Root != "/repo" {
		t.Fatalf("unexpected root: %s", paths.Root)
	}
	if paths.ConfigPath != filepath.Join("/repo", ".devbed", "config.toml") {
		t.Fatalf("unexpected config path: %s", paths.ConfigPath)
	}
	if paths.MarkerPath != filepath.Join("/repo", ".devbed", "state", "provision.json") {
		t.Fatalf("unexpected marker path: %s", paths.MarkerPath)
	}
	if paths.LockPath != filepath.Join("/repo", ".devbed", "state", "provision.lock") {
		t.Fatalf("unexpected lock path: %s", paths.LockPath)
	}
	if paths.ExamplesDir != filepath.Join("/repo", "examples") {
		t.Fatalf("unexpected examples dir: %s", paths.ExamplesDir)
	}
}

func TestPathHelpers(t *testing.T) {
	paths := DefaultPaths("/repo")
	cfg := validTestConfig()

	if got := paths.DestDir(cfg); got != filepath.Join("/repo", "examples", "courseware") {
		t.Fatalf("unexpected dest dir: %s", got)
	}
	if got := paths.ScratchDir(cfg); got != filepath.Join("/repo", "examples", DefaultScratch) {
		t.Fatalf("unexpected scratch dir: %s", got)
	}
	if got := paths.PatchPath("0001.patch"); got != filepath.Join("/repo", ".devbed", "patches", "0001.patch") {
		t.Fatalf("unexpected patch path: %s", got)
	}
	if got := paths.SourceLinkPath(cfg); got != filepath.Join("/repo", "examples", "courseware", "modules", "analytics") {
		t.Fatalf("unexpected source link path: %s", got)
	}
	if got := paths.TestsLinkPath(cfg); got != filepath.Join("/repo", "examples", "courseware", "tests", "ext", "analytics") {
		t.Fatalf("unexpected tests link path: %s", got)
	}
	if got := paths.SourceTargetPath(cfg); got != filepath.Join("/repo", "src", "analytics") {
		t.Fatalf("unexpected source target: %s", got)
	}
	if got := paths.TestsTargetPath(cfg); got != filepath.Join("/repo", "tests", "analytics") {
		t.Fatalf("unexpected tests target: %s", got)
	}
}

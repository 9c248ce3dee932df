package main

import (
	"context"
	"strings"
	"testing"
)

func TestMcpCommandRequiresInit(t *testing.T) {
	stubGetwd(t, t.TempDir(), nil)

	_, err := runCommand(t, "", "mcp")
	if err == nil || !strings.Contains(err.Error(), "devbed isn't initialized") {
		t.Fatalf("expected missing .devbed error, got %v", err)
	}
}

func TestMcpCommandServesAtRepoRoot(t *testing.T) {
	dir := t.TempDir()
	writeTestRepo(t, dir)
	stubGetwd(t, dir, nil)

	orig := runStatusServer
	var gotVersion, gotRoot string
	runStatusServer = func(ctx context.Context, version string, root string) error {
		gotVersion = version
		gotRoot = root
		return nil
	}
	t.Cleanup(func() { runStatusServer = orig })

	if _, err := runCommand(t, "", "mcp"); err != nil {
		t.Fatalf("mcp: %v", err)
	}
	if gotVersion != Version {
		t.Fatalf("expected version %q, got %q", Version, gotVersion)
	}
	if gotRoot != dir {
		t.Fatalf("expected root %q, got %q", dir, gotRoot)
	}
}

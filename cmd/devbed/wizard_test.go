package main

import (
	"strings"
	"testing"
)

func TestWizardCommandRequiresInit(t *testing.T) {
	stubGetwd(t, t.TempDir(), nil)

	_, err := runCommand(t, "", "wizard")
	if err == nil || !strings.Contains(err.Error(), "devbed isn't initialized") {
		t.Fatalf("expected missing .devbed error, got %v", err)
	}
}

func TestWizardCommandRunsAtRepoRoot(t *testing.T) {
	dir := t.TempDir()
	writeTestRepo(t, dir)
	stubGetwd(t, dir, nil)
	calls, gotRoot := stubRunWizard(t)

	if _, err := runCommand(t, "", "wizard"); err != nil {
		t.Fatalf("wizard: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("expected wizard to run once, ran %d times", *calls)
	}
	if *gotRoot != dir {
		t.Fatalf("expected root %q, got %q", dir, *gotRoot)
	}
}

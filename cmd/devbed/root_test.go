package main

// NOTE: Tests in this package mutate package-level globals (getwd, isTerminal,
// runWizard, runStatusServer, installRun, executeFunc). Do not use
// t.Parallel() at the top level. Each test must restore globals via t.Cleanup()
// or defer.

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootVersionFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.Version = "v1.2.3"
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetArgs([]string{"--version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "v1.2.3" {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, sub := range []string{"init", "up", "clean", "doctor", "wizard", "mcp"} {
		if !strings.Contains(out.String(), sub) {
			t.Fatalf("expected help to list %q, got:\n%s", sub, out.String())
		}
	}
	if !strings.Contains(out.String(), "bootstraps a development environment") {
		t.Fatalf("expected long description, got:\n%s", out.String())
	}
}

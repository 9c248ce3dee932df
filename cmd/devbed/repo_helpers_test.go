package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oliworks/devbed/internal/provision"
)

const testConfig = `[framework]
url = "https://github.com/acme/courseware.git"
revision = "4242424242424242424242424242424242424242"
subdir = "courseware"
dest = "courseware"

[module]
name = "billing"
source = "src/billing"
tests = "tests/billing"
`

// writeTestRepo lays down an initialized repository: .devbed with a valid
// config plus the patches and state directories.
func writeTestRepo(t *testing.T, root string) {
	t.Helper()
	for _, dir := range []string{
		filepath.Join(root, ".devbed", "patches"),
		filepath.Join(root, ".devbed", "state"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	configPath := filepath.Join(root, ".devbed", "config.toml")
	if err := os.WriteFile(configPath, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeTestMarker records a completed provisioning run matching testConfig.
func writeTestMarker(t *testing.T, root string, revision string) {
	t.Helper()
	marker := provision.Marker{
		SchemaVersion:      1,
		URL:                "https://github.com/acme/courseware.git",
		Revision:           revision,
		ConfiguredRevision: revision,
		Subdir:             "courseware",
		Dest:               "courseware",
		ProvisionedAtUTC:   "2026-01-12T10:00:00Z",
		Links: []provision.MarkerLink{
			{Path: "courseware/modules/billing", Target: "../../../../src/billing"},
		},
	}
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		t.Fatalf("marshal marker: %v", err)
	}
	path := filepath.Join(root, ".devbed", "state", "provision.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
}

// makeDest creates the provisioned destination tree for testConfig.
func makeDest(t *testing.T, root string) string {
	t.Helper()
	dest := filepath.Join(root, "examples", "courseware")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}
	return dest
}

// stubTerminal forces the interactive-terminal check for the duration of a test.
func stubTerminal(t *testing.T, interactive bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return interactive }
	t.Cleanup(func() { isTerminal = orig })
}

// runCommand executes the CLI with args and returns the combined output.
func runCommand(t *testing.T, stdin string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != "" {
		cmd.SetIn(bytes.NewBufferString(stdin))
	}
	err := cmd.Execute()
	return &out, err
}

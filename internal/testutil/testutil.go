package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubScript(t, dir, name, "exit 0")
}

// WriteStubScript writes an executable shell stub with the provided script body.
// The shebang line is added automatically; a trailing newline is ensured.
func WriteStubScript(t *testing.T, dir string, name string, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	body := script
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	content := []byte("#!/bin/sh\n" + body)
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

package gitcli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/oliworks/devbed/internal/testutil"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// gitHelper runs git directly for test fixture setup.
func gitHelper(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// initOrigin creates a repository with one committed file and returns its
// path and head commit.
func initOrigin(t *testing.T) (string, string) {
	t.Helper()
	origin := t.TempDir()
	gitHelper(t, origin, "init", "--quiet")
	if err := os.WriteFile(filepath.Join(origin, "a.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	gitHelper(t, origin, "add", "a.txt")
	gitHelper(t, origin, "commit", "--quiet", "-m", "initial")
	return origin, gitHelper(t, origin, "rev-parse", "HEAD")
}

func TestCloneCheckoutResolveHead(t *testing.T) {
	requireGit(t)
	origin, head := initOrigin(t)

	g := New()
	ctx := context.Background()
	clone := filepath.Join(t.TempDir(), "clone")

	if err := g.Clone(ctx, origin, clone); err != nil {
		t.Fatalf("Clone error: %v", err)
	}
	if err := g.Checkout(ctx, clone, head); err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	got, err := g.ResolveHead(ctx, clone)
	if err != nil {
		t.Fatalf("ResolveHead error: %v", err)
	}
	if got != head {
		t.Fatalf("expected head %s, got %s", head, got)
	}
}

func TestCheckoutUnknownRevision(t *testing.T) {
	requireGit(t)
	origin, _ := initOrigin(t)

	g := New()
	err := g.Checkout(context.Background(), origin, "0000000000000000000000000000000000000000")
	if err == nil {
		t.Fatal("expected checkout error")
	}
	if !strings.Contains(err.Error(), "checkout") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckAndApplyPatch(t *testing.T) {
	requireGit(t)
	tree := t.TempDir()
	if err := os.WriteFile(filepath.Join(tree, "a.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	patch := filepath.Join(t.TempDir(), "change.patch")
	content := "--- a/a.txt\n+++ b/a.txt\n@@ -1 +1 @@\n-hello\n+goodbye\n"
	if err := os.WriteFile(patch, []byte(content), 0o644); err != nil {
		t.Fatalf("write patch: %v", err)
	}

	g := New()
	ctx := context.Background()
	if err := g.CheckPatch(ctx, tree, patch, 1); err != nil {
		t.Fatalf("CheckPatch error: %v", err)
	}
	if err := g.ApplyPatch(ctx, tree, patch, 1); err != nil {
		t.Fatalf("ApplyPatch error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(tree, "a.txt"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "goodbye\n" {
		t.Fatalf("unexpected content: %q", string(data))
	}
	// A second check must fail; the pre-image is gone.
	if err := g.CheckPatch(ctx, tree, patch, 1); err == nil {
		t.Fatal("expected CheckPatch to fail after apply")
	}
}

func TestAvailableReportsVersion(t *testing.T) {
	requireGit(t)
	version, err := New().Available(context.Background())
	if err != nil {
		t.Fatalf("Available error: %v", err)
	}
	if !strings.Contains(version, "git version") {
		t.Fatalf("unexpected version output: %q", version)
	}
}

func TestAvailableMissingGit(t *testing.T) {
	g := &Git{Bin: filepath.Join(t.TempDir(), "missing-git")}
	_, err := g.Available(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAvailableEmptyVersionOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on windows")
	}
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "git")
	g := &Git{Bin: filepath.Join(dir, "git")}
	_, err := g.Available(context.Background())
	if err == nil || !strings.Contains(err.Error(), "empty output") {
		t.Fatalf("expected empty output error, got: %v", err)
	}
}

func TestRunIncludesCommandOutputInError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on windows")
	}
	dir := t.TempDir()
	testutil.WriteStubScript(t, dir, "git", "echo boom >&2\nexit 3")
	g := &Git{Bin: filepath.Join(dir, "git")}
	err := g.Clone(context.Background(), "https://example.com/repo.git", filepath.Join(dir, "clone"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected stub output in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "clone") {
		t.Fatalf("expected git args in error, got: %v", err)
	}
}

func TestInvocationFlags(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on windows")
	}
	dir := t.TempDir()
	log := filepath.Join(dir, "args.log")
	testutil.WriteStubScript(t, dir, "git", "printf '%s\\n' \"$@\" >> '"+log+"'")
	g := &Git{Bin: filepath.Join(dir, "git")}
	ctx := context.Background()

	if err := g.Checkout(ctx, dir, "feature-branch"); err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	if err := g.CheckPatch(ctx, dir, "fix.patch", 2); err != nil {
		t.Fatalf("CheckPatch error: %v", err)
	}

	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read args log: %v", err)
	}
	want := strings.Join([]string{
		"-c", "advice.detachedHead=false", "checkout", "--quiet", "--detach", "feature-branch", "--",
		"apply", "--check", "-p2", "fix.patch",
	}, "\n") + "\n"
	if string(data) != want {
		t.Fatalf("unexpected git invocations:\n%s", data)
	}
}

func TestCloneMissingGitBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	g := &Git{Bin: "definitely-missing-git"}
	err := g.Clone(context.Background(), "https://example.com/repo.git", filepath.Join(t.TempDir(), "clone"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Fatalf("unexpected error: %v", err)
	}
}

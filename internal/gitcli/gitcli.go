// Package gitcli runs the git executable for fetch and patch operations.
package gitcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/oliworks/devbed/internal/messages"
)

// Seams for tests.
var (
	execCommandContext = exec.CommandContext
	lookPath           = exec.LookPath
)

// Git invokes the git executable. The zero value is not usable; call New.
type Git struct {
	// Bin is the git executable name or path.
	Bin string
}

// New returns a Git that runs the git found on PATH.
func New() *Git {
	return &Git{Bin: "git"}
}

// Available reports whether git can be invoked, returning its version string.
func (g *Git) Available(ctx context.Context) (string, error) {
	if _, err := lookPath(g.Bin); err != nil {
		return "", errors.New(messages.GitNotFound)
	}
	out, err := g.run(ctx, "", "version")
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(out)
	if version == "" {
		return "", fmt.Errorf(messages.GitEmptyOutputFmt, "version")
	}
	return version, nil
}

// Clone clones url into dir. The parent of dir must exist; dir must not.
func (g *Git) Clone(ctx context.Context, url, dir string) error {
	_, err := g.run(ctx, "", "clone", "--quiet", "--", url, dir)
	return err
}

// Checkout checks out revision in the clone at dir. The checkout is always
// detached, so a branch-name revision pins the tree at the branch's current
// commit instead of leaving an attached HEAD behind.
func (g *Git) Checkout(ctx context.Context, dir, revision string) error {
	_, err := g.run(ctx, dir, "-c", "advice.detachedHead=false", "checkout", "--quiet", "--detach", revision, "--")
	return err
}

// ResolveHead returns the commit hash checked out in dir.
func (g *Git) ResolveHead(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	head := strings.TrimSpace(out)
	if head == "" {
		return "", fmt.Errorf(messages.GitEmptyOutputFmt, "rev-parse HEAD")
	}
	return head, nil
}

// CheckPatch verifies the patch at patchPath would apply cleanly to the tree
// at dir without touching it.
func (g *Git) CheckPatch(ctx context.Context, dir, patchPath string, strip int) error {
	_, err := g.run(ctx, dir, "apply", "--check", fmt.Sprintf("-p%d", strip), patchPath)
	return err
}

// ApplyPatch applies the patch at patchPath to the tree at dir.
func (g *Git) ApplyPatch(ctx context.Context, dir, patchPath string, strip int) error {
	_, err := g.run(ctx, dir, "apply", fmt.Sprintf("-p%d", strip), patchPath)
	return err
}

// run executes git with args, returning combined stdout and stderr.
// dir may be empty to inherit the working directory.
func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := execCommandContext(ctx, g.Bin, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", errors.New(messages.GitNotFound)
		}
		return "", fmt.Errorf(messages.GitCommandFailedFmt, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

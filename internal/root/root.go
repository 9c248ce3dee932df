// Package root locates the repository root for devbed commands.
package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oliworks/devbed/internal/messages"
)

// FindDevbedRoot walks upward from start looking for a directory containing .devbed.
// It returns the root path and whether it was found.
func FindDevbedRoot(start string) (string, bool, error) {
	if start == "" {
		return "", false, errors.New(messages.RootStartPathRequired)
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, ".devbed")
		info, err := os.Stat(candidate)
		if err == nil {
			if !info.IsDir() {
				return "", false, fmt.Errorf(messages.RootPathNotDirFmt, candidate)
			}
			return dir, true, nil
		}
		if !os.IsNotExist(err) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// FindRepoRoot finds the best candidate root for initialization.
// It prefers the nearest .devbed root, then the nearest .git root, and falls
// back to start when neither exists. A .git entry may be a directory or a
// regular file (worktrees); anything else is an error.
func FindRepoRoot(start string) (string, error) {
	if start == "" {
		return "", errors.New(messages.RootStartPathRequired)
	}
	if dir, found, err := FindDevbedRoot(start); err != nil {
		return "", err
	} else if found {
		return dir, nil
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	top := dir
	for {
		candidate := filepath.Join(dir, ".git")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return dir, nil
			}
			return "", fmt.Errorf(messages.RootPathNotDirOrFileFmt, candidate)
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return top, nil
		}
		dir = parent
	}
}

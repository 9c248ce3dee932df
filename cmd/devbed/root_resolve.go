package main

import (
	"errors"

	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/root"
)

// resolveRepoRoot returns the repo root that contains .devbed or fails if missing.
func resolveRepoRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	repoRoot, found, err := root.FindDevbedRoot(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New(messages.RootMissingDevbed)
	}
	return repoRoot, nil
}

// resolveInitRoot finds the best candidate root for initialization (prefers .devbed, then .git).
func resolveInitRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return root.FindRepoRoot(cwd)
}

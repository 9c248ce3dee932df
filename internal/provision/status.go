package provision

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oliworks/devbed/internal/messages"
)

// State classifies the provisioning state of a repository.
type State int

const (
	// StateNotProvisioned means no marker and no destination tree exist.
	StateNotProvisioned State = iota
	// StateProvisioned means a valid marker records an existing destination tree.
	StateProvisioned
	// StateStale means a marker exists but the tree it records is missing.
	StateStale
	// StateUnmanaged means a destination tree exists that no valid marker
	// records. Devbed never modifies or removes such a tree.
	StateUnmanaged
)

func (s State) String() string {
	switch s {
	case StateNotProvisioned:
		return "not provisioned"
	case StateProvisioned:
		return "provisioned"
	case StateStale:
		return "stale"
	case StateUnmanaged:
		return "unmanaged"
	}
	return "unknown"
}

// Status describes what Inspect found.
type Status struct {
	State State
	// Dest is the absolute path of the destination tree, taken from the
	// marker when one is readable and from the config otherwise.
	Dest string
	// Marker is the parsed marker, nil when absent or unreadable.
	Marker *Marker
	// MarkerErr is set when a marker file exists but could not be used.
	MarkerErr error
}

// Inspect reports the provisioning state without taking the lock and
// without modifying anything.
func (p *Provisioner) Inspect() (Status, error) {
	return p.inspect()
}

func (p *Provisioner) inspect() (Status, error) {
	status := Status{State: StateNotProvisioned}
	markerPresent := false
	marker, err := readMarker(p.sys, p.paths.MarkerPath)
	switch {
	case err == nil:
		markerPresent = true
		status.Marker = marker
	case errors.Is(err, os.ErrNotExist):
	default:
		markerPresent = true
		status.MarkerErr = err
	}

	dest := p.paths.DestDir(&p.cfg)
	if marker != nil {
		dest = filepath.Join(p.paths.ExamplesDir, marker.Dest)
	}
	status.Dest = dest

	destExists, err := p.exists(dest)
	if err != nil {
		return Status{}, err
	}
	switch {
	case markerPresent && destExists:
		if status.MarkerErr != nil {
			status.State = StateUnmanaged
		} else {
			status.State = StateProvisioned
		}
	case markerPresent:
		status.State = StateStale
	case destExists:
		status.State = StateUnmanaged
	}
	return status, nil
}

// exists reports whether path exists, without following a final symlink.
func (p *Provisioner) exists(path string) (bool, error) {
	if _, err := p.sys.Lstat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(messages.LinkInspectExistsFmt, path, err)
	}
	return true, nil
}

package provision

import (
	"errors"

	"github.com/oliworks/devbed/internal/messages"
)

// ErrLocked indicates another devbed process holds the provisioning lock.
var ErrLocked = errors.New(messages.ProvisionLockHeld)

// FetchError indicates the framework checkout could not be fetched.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// LayoutError indicates the fetched checkout did not have the expected shape.
type LayoutError struct {
	Err error
}

func (e *LayoutError) Error() string { return e.Err.Error() }

func (e *LayoutError) Unwrap() error { return e.Err }

// LinkError indicates a module symlink could not be installed.
type LinkError struct {
	Path string
	Err  error
}

func (e *LinkError) Error() string { return e.Err.Error() }

func (e *LinkError) Unwrap() error { return e.Err }

// PatchError indicates a configured patch could not be applied. Conflict
// carries a rendered explanation of the first mismatched hunk when the
// failure was a content conflict rather than an I/O problem.
type PatchError struct {
	File     string
	Conflict string
	Err      error
}

func (e *PatchError) Error() string { return e.Err.Error() }

func (e *PatchError) Unwrap() error { return e.Err }

// StateError indicates the repository is in a state the provisioner refuses
// to modify, such as a provisioned tree with no marker recording it.
type StateError struct {
	Err error
}

func (e *StateError) Error() string { return e.Err.Error() }

func (e *StateError) Unwrap() error { return e.Err }

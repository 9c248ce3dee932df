package provision

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oliworks/devbed/internal/messages"
)

// Clean removes everything a provisioning run created: the destination
// tree, the scratch directory, and the marker. The symlinks inside the
// destination go with it; their targets in the repository are never touched.
// A destination tree with no marker file recording it is refused.
func (p *Provisioner) Clean() error {
	lock, err := acquireLock(p.paths.LockPath)
	if err != nil {
		return err
	}
	defer lock.release()

	dest := p.paths.DestDir(&p.cfg)
	marker, merr := readMarker(p.sys, p.paths.MarkerPath)
	markerExists := merr == nil || !errors.Is(merr, os.ErrNotExist)
	if marker != nil {
		dest = filepath.Join(p.paths.ExamplesDir, marker.Dest)
	}
	scratch := p.paths.ScratchDir(&p.cfg)

	destExists, err := p.exists(dest)
	if err != nil {
		return &StateError{Err: err}
	}
	scratchExists, err := p.exists(scratch)
	if err != nil {
		return &StateError{Err: err}
	}

	if destExists && !markerExists {
		return &StateError{Err: fmt.Errorf(messages.CleanUnmanagedTreeFmt, p.rel(dest))}
	}
	if !destExists && !scratchExists && !markerExists {
		_, _ = fmt.Fprint(p.out, messages.CleanNothingToDo)
		return nil
	}

	var targets []string
	if scratchExists {
		targets = append(targets, scratch)
	}
	if destExists {
		targets = append(targets, dest)
	}
	if markerExists {
		targets = append(targets, p.paths.MarkerPath)
	}
	for _, path := range targets {
		if err := p.sys.RemoveAll(path); err != nil {
			return &StateError{Err: fmt.Errorf(messages.CleanRemoveFmt, p.rel(path), err)}
		}
		_, _ = fmt.Fprintf(p.out, messages.CleanRemovedFmt, p.rel(path))
	}
	_, _ = fmt.Fprint(p.out, messages.CleanComplete)
	return nil
}

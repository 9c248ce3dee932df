// Package provision implements the idempotent fetch, link, and patch
// pipeline that installs a framework checkout under examples/ and wires the
// repository module into it, recording a marker when a run completes.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/gitcli"
	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/patchfile"
)

// gitClient is the subset of gitcli.Git the provisioner calls.
type gitClient interface {
	Clone(ctx context.Context, url, dir string) error
	Checkout(ctx context.Context, dir, revision string) error
	ResolveHead(ctx context.Context, dir string) (string, error)
	CheckPatch(ctx context.Context, dir, patchPath string, strip int) error
	ApplyPatch(ctx context.Context, dir, patchPath string, strip int) error
}

// Options configures a Provisioner. Nil fields fall back to the real
// filesystem, the git binary on PATH, discarded output, and wall-clock time.
type Options struct {
	System System
	Git    gitClient
	Out    io.Writer
	Now    func() time.Time
}

// Provisioner runs the provisioning pipeline for one repository. It copies
// the config at construction, so edits to config.toml made after New do not
// change what an in-flight run does.
type Provisioner struct {
	cfg   config.Config
	paths config.Paths
	sys   System
	git   gitClient
	out   io.Writer
	now   func() time.Time

	resolvedHead string
	links        []MarkerLink
	patches      []MarkerPatch
}

// New builds a Provisioner from a validated config and resolved paths.
func New(cfg *config.Config, paths config.Paths, opts Options) (*Provisioner, error) {
	if cfg == nil {
		return nil, errors.New(messages.ProvisionConfigRequired)
	}
	if paths.Root == "" {
		return nil, errors.New(messages.ProvisionRootRequired)
	}
	p := &Provisioner{
		cfg:   *cfg,
		paths: paths,
		sys:   opts.System,
		git:   opts.Git,
		out:   opts.Out,
		now:   opts.Now,
	}
	if p.sys == nil {
		p.sys = RealSystem{}
	}
	if p.git == nil {
		p.git = gitcli.New()
	}
	if p.out == nil {
		p.out = io.Discard
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p, nil
}

// Ensure provisions the framework tree: fetch the pinned revision, install
// the module symlinks, apply configured patches, and write the completion
// marker. A repository that is already provisioned is left untouched. The
// first failing step aborts the run with no rollback; whatever the failed
// step produced stays on disk, and because the marker is only written last,
// the next run reports the partial tree instead of skipping it. The context
// bounds the git subprocesses.
func (p *Provisioner) Ensure(ctx context.Context) error {
	lock, err := acquireLock(p.paths.LockPath)
	if err != nil {
		return err
	}
	defer lock.release()

	status, err := p.inspect()
	if err != nil {
		return err
	}
	switch status.State {
	case StateProvisioned:
		_, _ = fmt.Fprintf(p.out, messages.UpAlreadyProvisionedFmt, p.rel(status.Dest), status.Marker.Revision)
		return nil
	case StateUnmanaged:
		return &StateError{Err: fmt.Errorf(messages.StateUnmanagedTreeFmt, p.rel(status.Dest))}
	case StateStale:
		_, _ = fmt.Fprintf(p.out, messages.StateStaleMarkerFmt, p.rel(status.Dest))
		if err := p.sys.Remove(p.paths.MarkerPath); err != nil {
			return &StateError{Err: fmt.Errorf(messages.CleanRemoveFmt, p.rel(p.paths.MarkerPath), err)}
		}
	}

	steps := []func() error{
		func() error { return p.fetch(ctx) },
		p.installLinks,
		func() error { return p.applyPatches(ctx) },
		p.writeCompletionMarker,
	}
	if err := runSteps(steps); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(p.out, messages.UpCompleteFmt, p.rel(p.paths.DestDir(&p.cfg)), p.resolvedHead)
	return nil
}

func runSteps(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// fetch clones the framework into the scratch directory, pins the configured
// revision, moves the wanted subdirectory to the destination, and removes
// the scratch checkout.
func (p *Provisioner) fetch(ctx context.Context) error {
	scratch := p.paths.ScratchDir(&p.cfg)
	dest := p.paths.DestDir(&p.cfg)

	_, _ = fmt.Fprintf(p.out, messages.UpFetchingFmt, p.cfg.Framework.URL, p.cfg.Framework.Revision)

	// Scratch checkouts are transient by definition, so a leftover from an
	// aborted run is safe to clear.
	if _, err := p.sys.Lstat(scratch); err == nil {
		_, _ = fmt.Fprintf(p.out, messages.FetchScratchLeftoverFmt, p.rel(scratch))
		if err := p.sys.RemoveAll(scratch); err != nil {
			return &FetchError{Err: fmt.Errorf(messages.FetchRemoveScratchFmt, p.rel(scratch), err)}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &FetchError{Err: fmt.Errorf(messages.LinkInspectExistsFmt, scratch, err)}
	}
	if err := p.sys.MkdirAll(p.paths.ExamplesDir, 0o755); err != nil {
		return &FetchError{Err: fmt.Errorf(messages.FetchCreateParentFmt, p.paths.ExamplesDir, err)}
	}
	if err := p.git.Clone(ctx, p.cfg.Framework.URL, scratch); err != nil {
		return &FetchError{Err: fmt.Errorf(messages.FetchCloneFmt, p.cfg.Framework.URL, err)}
	}
	if err := p.git.Checkout(ctx, scratch, p.cfg.Framework.Revision); err != nil {
		return &FetchError{Err: fmt.Errorf(messages.FetchCheckoutFmt, p.cfg.Framework.Revision, err)}
	}
	head, err := p.git.ResolveHead(ctx, scratch)
	if err != nil {
		return &FetchError{Err: err}
	}
	p.resolvedHead = head

	subdir := filepath.Join(scratch, filepath.FromSlash(p.cfg.Framework.Subdir))
	info, err := p.sys.Stat(subdir)
	if errors.Is(err, os.ErrNotExist) {
		return &LayoutError{Err: fmt.Errorf(messages.FetchSubdirMissingFmt, p.cfg.Framework.Subdir, p.rel(scratch))}
	}
	if err != nil {
		return &LayoutError{Err: fmt.Errorf(messages.LinkInspectExistsFmt, subdir, err)}
	}
	if !info.IsDir() {
		return &LayoutError{Err: fmt.Errorf(messages.FetchSubdirNotDirFmt, p.cfg.Framework.Subdir)}
	}
	if err := p.sys.Rename(subdir, dest); err != nil {
		return &LayoutError{Err: fmt.Errorf(messages.FetchMoveFmt, p.rel(subdir), p.rel(dest), err)}
	}
	if err := p.sys.RemoveAll(scratch); err != nil {
		return &LayoutError{Err: fmt.Errorf(messages.FetchRemoveScratchFmt, p.rel(scratch), err)}
	}
	_, _ = fmt.Fprintf(p.out, messages.UpFetchedFmt, p.rel(dest))
	return nil
}

type linkSpec struct {
	path   string
	target string
}

// installLinks creates the module source and tests symlinks inside the
// provisioned tree. Links are relative so the repository can move without
// breaking them, and they reference the repository tree without owning it.
func (p *Provisioner) installLinks() error {
	specs := []linkSpec{
		{path: p.paths.SourceLinkPath(&p.cfg), target: p.paths.SourceTargetPath(&p.cfg)},
		{path: p.paths.TestsLinkPath(&p.cfg), target: p.paths.TestsTargetPath(&p.cfg)},
	}
	p.links = p.links[:0]
	for _, spec := range specs {
		target, err := p.installLink(spec)
		if err != nil {
			return err
		}
		p.links = append(p.links, MarkerLink{Path: p.relSlash(spec.path), Target: target})
	}
	return nil
}

// installLink creates one relative symlink. The link's parent directory must
// already exist in the fetched tree, and nothing may occupy the link path;
// both checks turn the fixed-layout assumption into explicit errors instead
// of silently linking into the wrong place.
func (p *Provisioner) installLink(spec linkSpec) (string, error) {
	info, err := p.sys.Stat(spec.target)
	if errors.Is(err, os.ErrNotExist) {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkTargetMissingFmt, p.rel(spec.target))}
	}
	if err != nil {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkInspectExistsFmt, spec.target, err)}
	}
	if !info.IsDir() {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkTargetNotDirFmt, p.rel(spec.target))}
	}

	linkDir := filepath.Dir(spec.path)
	dirInfo, err := p.sys.Stat(linkDir)
	if errors.Is(err, os.ErrNotExist) {
		return "", &LayoutError{Err: fmt.Errorf(messages.LinkParentMissingFmt, p.rel(linkDir))}
	}
	if err != nil {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkInspectExistsFmt, linkDir, err)}
	}
	if !dirInfo.IsDir() {
		return "", &LayoutError{Err: fmt.Errorf(messages.LinkParentNotDirFmt, p.rel(linkDir))}
	}

	rel, err := filepath.Rel(linkDir, spec.target)
	if err != nil {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkRelFmt, linkDir, spec.target, err)}
	}
	if _, err := p.sys.Lstat(spec.path); err == nil {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkConflictFmt, p.rel(spec.path))}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkInspectExistsFmt, spec.path, err)}
	}

	if err := p.sys.Symlink(rel, spec.path); err != nil {
		return "", &LinkError{Path: spec.path, Err: fmt.Errorf(messages.LinkCreateFmt, spec.path, err)}
	}
	_, _ = fmt.Fprintf(p.out, messages.LinkedFmt, p.rel(spec.path), rel)
	return rel, nil
}

// applyPatches checks and applies each configured patch in order. Each patch
// is verified against the tree as left by the previous one, so patch series
// that build on each other work. The first failure stops the run; a content
// conflict carries a rendered explanation of the mismatched hunk.
func (p *Provisioner) applyPatches(ctx context.Context) error {
	p.patches = p.patches[:0]
	if len(p.cfg.Patches) == 0 {
		_, _ = fmt.Fprint(p.out, messages.UpNoPatches)
		return nil
	}
	_, _ = fmt.Fprintf(p.out, messages.UpPatchCountFmt, len(p.cfg.Patches))
	dest := p.paths.DestDir(&p.cfg)
	for _, pc := range p.cfg.Patches {
		path := p.paths.PatchPath(pc.File)
		data, err := p.sys.ReadFile(path)
		if err != nil {
			return &PatchError{File: pc.File, Err: fmt.Errorf(messages.PatchReadFailedFmt, pc.File, err)}
		}
		parsed, err := patchfile.Parse(pc.File, data)
		if err != nil {
			return &PatchError{File: pc.File, Err: err}
		}
		if err := p.git.CheckPatch(ctx, dest, path, pc.StripCount()); err != nil {
			conflict := patchfile.Explain(parsed, dest, pc.StripCount())
			return &PatchError{
				File:     pc.File,
				Conflict: conflict,
				Err:      fmt.Errorf(messages.PatchCheckFailedFmt, pc.File, err),
			}
		}
		if err := p.git.ApplyPatch(ctx, dest, path, pc.StripCount()); err != nil {
			return &PatchError{File: pc.File, Err: fmt.Errorf(messages.PatchApplyFailedFmt, pc.File, err)}
		}
		p.patches = append(p.patches, MarkerPatch{File: pc.File, SHA256: parsed.SHA256})
		_, _ = fmt.Fprintf(p.out, messages.UpPatchAppliedFmt, pc.File)
	}
	return nil
}

func (p *Provisioner) writeCompletionMarker() error {
	marker := &Marker{
		SchemaVersion:      markerSchemaVersion,
		URL:                p.cfg.Framework.URL,
		Revision:           p.resolvedHead,
		ConfiguredRevision: p.cfg.Framework.Revision,
		Subdir:             p.cfg.Framework.Subdir,
		Dest:               p.cfg.Framework.Dest,
		ProvisionedAtUTC:   p.now().UTC().Format(time.RFC3339),
		Links:              append([]MarkerLink(nil), p.links...),
		Patches:            append([]MarkerPatch(nil), p.patches...),
	}
	if err := writeMarker(p.sys, p.paths.MarkerPath, marker); err != nil {
		return &StateError{Err: err}
	}
	return nil
}

// rel shortens an absolute path for display, relative to the repo root.
func (p *Provisioner) rel(path string) string {
	rel, err := filepath.Rel(p.paths.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// relSlash is rel with forward slashes, for marker fields.
func (p *Provisioner) relSlash(path string) string {
	return filepath.ToSlash(p.rel(path))
}

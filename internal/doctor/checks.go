package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/gitcli"
	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/patchfile"
	"github.com/oliworks/devbed/internal/provision"
)

var (
	loadConfigFunc        = config.LoadConfig
	loadConfigLenientFunc = config.LoadConfigLenient
	gitAvailableFunc      = func(ctx context.Context) (string, error) {
		return gitcli.New().Available(ctx)
	}
)

// CheckStructure verifies that the required devbed directories exist.
func CheckStructure(root string) []Result {
	var results []Result
	paths := []string{".devbed", ".devbed/patches", ".devbed/state"}

	for _, p := range paths {
		fullPath := filepath.Join(root, p)
		info, err := os.Stat(fullPath)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameStructure,
				Message:        fmt.Sprintf(messages.DoctorMissingRequiredDirFmt, p),
				Recommendation: messages.DoctorMissingRequiredDirRecommend,
			})
			continue
		}
		if !info.IsDir() {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameStructure,
				Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, p),
				Recommendation: messages.DoctorPathNotDirRecommend,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameStructure,
			Message:   fmt.Sprintf(messages.DoctorDirExistsFmt, p),
		})
	}
	return results
}

// CheckConfig validates that the configuration file can be loaded and parsed.
// When strict loading fails with a validation error, CheckConfig falls back to
// lenient loading and returns the partial config so downstream checks still
// have something to work with.
func CheckConfig(root string) ([]Result, *config.Config) {
	var results []Result
	paths := config.DefaultPaths(root)
	cfg, err := loadConfigFunc(paths.ConfigPath)
	if err != nil {
		if !errors.Is(err, config.ErrConfigValidation) {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameConfig,
				Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
				Recommendation: messages.DoctorConfigLoadRecommend,
			})
			return results, nil
		}

		lenientCfg, lenientErr := loadConfigLenientFunc(paths.ConfigPath)
		if lenientErr != nil {
			// TOML syntax error or unreadable file. Nothing to recover.
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameConfig,
				Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, lenientErr),
				Recommendation: messages.DoctorConfigLoadRecommend,
			})
			return results, nil
		}

		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: messages.DoctorConfigLoadRecommend,
		})
		return results, lenientCfg
	}

	results = append(results, Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   messages.DoctorConfigLoaded,
	})
	return results, cfg
}

// CheckGit verifies that the git executable can be invoked.
func CheckGit(ctx context.Context) []Result {
	version, err := gitAvailableFunc(ctx)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameGit,
			Message:        fmt.Sprintf(messages.DoctorGitMissingFmt, err),
			Recommendation: messages.DoctorGitMissingRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameGit,
		Message:   fmt.Sprintf(messages.DoctorGitFoundFmt, version),
	}}
}

// CheckRevision warns when the pinned revision is not a full commit hash.
// Branch names and short hashes resolve differently over time, which breaks
// the reproducibility the marker depends on.
func CheckRevision(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	rev := cfg.Framework.Revision
	if isFullCommitHash(rev) {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameRevision,
			Message:   fmt.Sprintf(messages.DoctorRevisionPinnedFmt, rev),
		}}
	}
	return []Result{{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameRevision,
		Message:        fmt.Sprintf(messages.DoctorRevisionUnpinnedFmt, rev),
		Recommendation: messages.DoctorRevisionUnpinnedRecommend,
	}}
}

func isFullCommitHash(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// CheckProvision classifies the provisioning state and reports drift between
// the marker and the current configuration.
func CheckProvision(root string, cfg *config.Config, status provision.Status) []Result {
	rel := relPath(root, status.Dest)
	switch status.State {
	case provision.StateNotProvisioned:
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameProvision,
			Message:   messages.DoctorNotProvisioned,
		}}
	case provision.StateStale:
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameProvision,
			Message:        fmt.Sprintf(messages.DoctorProvisionStaleFmt, rel),
			Recommendation: messages.DoctorProvisionStaleRecommend,
		}}
	case provision.StateUnmanaged:
		if status.MarkerErr != nil {
			return []Result{{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameProvision,
				Message:        fmt.Sprintf(messages.DoctorProvisionMarkerInvalidFmt, status.MarkerErr),
				Recommendation: messages.DoctorProvisionMarkerInvalidRecommend,
			}}
		}
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameProvision,
			Message:        fmt.Sprintf(messages.DoctorProvisionUnmanagedFmt, rel),
			Recommendation: messages.DoctorProvisionUnmanagedRecommend,
		}}
	}

	results := []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameProvision,
		Message:   fmt.Sprintf(messages.DoctorProvisionedFmt, rel, status.Marker.Revision),
	}}
	if cfg != nil &&
		cfg.Framework.Revision != status.Marker.ConfiguredRevision &&
		cfg.Framework.Revision != status.Marker.Revision {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameProvision,
			Message:        fmt.Sprintf(messages.DoctorProvisionRevisionDriftFmt, status.Marker.ConfiguredRevision, cfg.Framework.Revision),
			Recommendation: messages.DoctorProvisionRevisionDriftRecommend,
		})
	}
	return results
}

// CheckLinks verifies the module symlinks of a provisioned tree: present,
// actually symlinks, pointing at the configured targets, and not dangling.
func CheckLinks(root string, cfg *config.Config, status provision.Status) []Result {
	if cfg == nil || status.State != provision.StateProvisioned {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameLinks,
			Message:   messages.DoctorLinksNotProvisioned,
		}}
	}
	paths := config.DefaultPaths(root)
	links := []struct {
		path   string
		target string
	}{
		{paths.SourceLinkPath(cfg), paths.SourceTargetPath(cfg)},
		{paths.TestsLinkPath(cfg), paths.TestsTargetPath(cfg)},
	}
	results := make([]Result, 0, len(links))
	for _, link := range links {
		results = append(results, checkLink(root, link.path, link.target))
	}
	return results
}

func checkLink(root, path, target string) Result {
	rel := relPath(root, path)
	info, err := os.Lstat(path)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkMissingFmt, rel),
			Recommendation: messages.DoctorLinkMissingRecommend,
		}
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkNotSymlinkFmt, rel),
			Recommendation: messages.DoctorLinkNotSymlinkRecommend,
		}
	}
	got, err := os.Readlink(path)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkMissingFmt, rel),
			Recommendation: messages.DoctorLinkMissingRecommend,
		}
	}
	want, err := filepath.Rel(filepath.Dir(path), target)
	if err != nil || got != want {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkWrongTargetFmt, rel, got, want),
			Recommendation: messages.DoctorLinkWrongTargetRecommend,
		}
	}
	if _, err := os.Stat(path); err != nil {
		// Stat follows the link; an error here means the target is gone.
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkBrokenFmt, rel, got),
			Recommendation: messages.DoctorLinkBrokenRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameLinks,
		Message:   fmt.Sprintf(messages.DoctorLinkOKFmt, rel, got),
	}
}

// CheckPatches parses each configured patch and compares it against what the
// marker recorded, so edits made after provisioning are surfaced.
func CheckPatches(root string, cfg *config.Config, marker *provision.Marker) []Result {
	if cfg == nil {
		return nil
	}
	if len(cfg.Patches) == 0 {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNamePatches,
			Message:   messages.DoctorNoPatches,
		}}
	}

	applied := make(map[string]string)
	if marker != nil {
		for _, mp := range marker.Patches {
			applied[mp.File] = mp.SHA256
		}
	}

	paths := config.DefaultPaths(root)
	var results []Result
	for _, pc := range cfg.Patches {
		data, err := os.ReadFile(paths.PatchPath(pc.File))
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePatches,
				Message:        fmt.Sprintf(messages.DoctorPatchMissingFmt, pc.File),
				Recommendation: messages.DoctorPatchMissingRecommend,
			})
			continue
		}
		parsed, err := patchfile.Parse(pc.File, data)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePatches,
				Message:        fmt.Sprintf(messages.DoctorPatchInvalidFmt, pc.File, err),
				Recommendation: messages.DoctorPatchInvalidRecommend,
			})
			continue
		}
		sha, recorded := applied[pc.File]
		switch {
		case marker != nil && !recorded:
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNamePatches,
				Message:        fmt.Sprintf(messages.DoctorPatchNotAppliedFmt, pc.File),
				Recommendation: messages.DoctorPatchNotAppliedRecommend,
			})
		case marker != nil && sha != parsed.SHA256:
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNamePatches,
				Message:        fmt.Sprintf(messages.DoctorPatchChangedFmt, pc.File),
				Recommendation: messages.DoctorPatchChangedRecommend,
			})
		default:
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNamePatches,
				Message:   fmt.Sprintf(messages.DoctorPatchOKFmt, pc.File, len(parsed.Files)),
			})
		}
	}
	return results
}

func relPath(root string, path string) string {
	if strings.TrimSpace(root) == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

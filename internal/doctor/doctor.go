// Package doctor implements the health checks behind `devbed doctor`.
package doctor

import (
	"context"
	"fmt"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/provision"
)

// Status is the severity of a check result.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is a single check outcome, rendered as one line of doctor output.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// Run executes the full check sequence against the repository at root and
// returns the combined results in display order. Field-level checks run on a
// leniently loaded config when strict loading fails; the provisioning checks
// need valid paths and are skipped then.
func Run(ctx context.Context, root string) []Result {
	results := CheckStructure(root)

	configResults, cfg := CheckConfig(root)
	results = append(results, configResults...)
	configOK := true
	for _, r := range configResults {
		if r.Status == StatusFail {
			configOK = false
		}
	}

	results = append(results, CheckGit(ctx)...)

	if cfg == nil {
		return results
	}
	results = append(results, CheckRevision(cfg)...)
	if !configOK {
		return results
	}

	status, err := inspectProvision(root, cfg)
	if err != nil {
		results = append(results, Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameProvision,
			Message:   fmt.Sprintf(messages.DoctorProvisionInspectFailedFmt, err),
		})
		return results
	}
	results = append(results, CheckProvision(root, cfg, status)...)
	results = append(results, CheckLinks(root, cfg, status)...)
	results = append(results, CheckPatches(root, cfg, status.Marker)...)
	return results
}

func inspectProvision(root string, cfg *config.Config) (provision.Status, error) {
	prov, err := provision.New(cfg, config.DefaultPaths(root), provision.Options{})
	if err != nil {
		return provision.Status{}, err
	}
	return prov.Inspect()
}

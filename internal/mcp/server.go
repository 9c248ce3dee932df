// Package mcp exposes devbed's read-only status surface as MCP tools over
// stdio, so coding agents can ask about provisioning state without running
// the CLI.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/doctor"
	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/provision"
)

const (
	toolProvisionStatus     = "provision_status"
	toolProvisionStatusDesc = "Report whether the framework tree under examples/ is provisioned and at which revision."
	toolDoctor              = "doctor"
	toolDoctorDesc          = "Run the devbed health checks and return their results."
)

type serverRunner func(ctx context.Context, server *mcp.Server) error

// RunServer serves the devbed tools for the repository at root over stdio
// until ctx ends. Both tools are read-only; nothing a client calls can
// modify the repository.
func RunServer(ctx context.Context, version string, root string) error {
	return runServer(ctx, version, root, defaultServerRunner)
}

// runServer builds the MCP server and runs it using the provided runner.
func runServer(ctx context.Context, version string, root string, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, errors.New("server runner is nil"))
	}
	if err := runner(ctx, newServer(version, root)); err != nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, err)
	}
	return nil
}

// defaultServerRunner runs the MCP server over stdio.
func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer(version string, root string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "devbed",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        toolProvisionStatus,
		Description: toolProvisionStatusDesc,
	}, provisionStatusHandler(root))

	mcp.AddTool(server, &mcp.Tool{
		Name:        toolDoctor,
		Description: toolDoctorDesc,
	}, doctorHandler(root))

	return server
}

// statusArgs is empty: the tools operate on the repository the server was
// started in.
type statusArgs struct{}

type statusResult struct {
	State              string `json:"state"`
	Dest               string `json:"dest"`
	URL                string `json:"url,omitempty"`
	Revision           string `json:"revision,omitempty"`
	ConfiguredRevision string `json:"configured_revision,omitempty"`
	ProvisionedAt      string `json:"provisioned_at,omitempty"`
	MarkerError        string `json:"marker_error,omitempty"`
}

func provisionStatusHandler(root string) func(context.Context, *mcp.CallToolRequest, statusArgs) (*mcp.CallToolResult, statusResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args statusArgs) (*mcp.CallToolResult, statusResult, error) {
		paths := config.DefaultPaths(root)
		cfg, err := config.LoadConfig(paths.ConfigPath)
		if err != nil {
			return nil, statusResult{}, err
		}
		prov, err := provision.New(cfg, paths, provision.Options{})
		if err != nil {
			return nil, statusResult{}, err
		}
		status, err := prov.Inspect()
		if err != nil {
			return nil, statusResult{}, err
		}

		result := statusResult{
			State: status.State.String(),
			Dest:  relPath(root, status.Dest),
		}
		if status.Marker != nil {
			result.URL = status.Marker.URL
			result.Revision = status.Marker.Revision
			result.ConfiguredRevision = status.Marker.ConfiguredRevision
			result.ProvisionedAt = status.Marker.ProvisionedAtUTC
		}
		if status.MarkerErr != nil {
			result.MarkerError = status.MarkerErr.Error()
		}
		return nil, result, nil
	}
}

type doctorArgs struct{}

type doctorCheck struct {
	Status         string `json:"status"`
	Check          string `json:"check"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation,omitempty"`
}

type doctorResult struct {
	Healthy bool          `json:"healthy"`
	Checks  []doctorCheck `json:"checks"`
}

func doctorHandler(root string) func(context.Context, *mcp.CallToolRequest, doctorArgs) (*mcp.CallToolResult, doctorResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args doctorArgs) (*mcp.CallToolResult, doctorResult, error) {
		results := doctor.Run(ctx, root)
		out := doctorResult{Healthy: true, Checks: make([]doctorCheck, 0, len(results))}
		for _, r := range results {
			if r.Status == doctor.StatusFail {
				out.Healthy = false
			}
			out.Checks = append(out.Checks, doctorCheck{
				Status:         string(r.Status),
				Check:          r.CheckName,
				Message:        r.Message,
				Recommendation: r.Recommendation,
			})
		}
		return nil, out, nil
	}
}

// relPath renders path relative to root for client display, falling back to
// the absolute path when it does not sit under root.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

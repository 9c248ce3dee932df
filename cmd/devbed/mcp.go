package main

import (
	"github.com/spf13/cobra"

	"github.com/oliworks/devbed/internal/mcp"
	"github.com/oliworks/devbed/internal/messages"
)

var runStatusServer = mcp.RunServer

func newMcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.McpUse,
		Short: messages.McpShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRepoRoot()
			if err != nil {
				return err
			}
			return runStatusServer(cmd.Context(), Version, root)
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/provision"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.UpUse,
		Short: messages.UpShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRepoRoot()
			if err != nil {
				return err
			}
			paths := config.DefaultPaths(root)
			cfg, err := config.LoadConfig(paths.ConfigPath)
			if err != nil {
				return err
			}
			p, err := provision.New(cfg, paths, provision.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			return p.Ensure(cmd.Context())
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oliworks/devbed/internal/config"
	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/provision"
)

func newCleanCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
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
			out := cmd.OutOrStdout()
			if !force {
				if !isTerminal() {
					return errors.New(messages.CleanRequiresConfirmation)
				}
				dest := paths.DestDir(cfg)
				if rel, relErr := filepath.Rel(root, dest); relErr == nil {
					dest = filepath.ToSlash(rel)
				}
				confirmed, err := promptYesNo(cmd.InOrStdin(), out, fmt.Sprintf(messages.CleanConfirmPromptFmt, dest), false)
				if err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprintln(out, messages.CleanAborted)
					return nil
				}
			}
			p, err := provision.New(cfg, paths, provision.Options{Out: out})
			if err != nil {
				return err
			}
			return p.Clean()
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, messages.CleanFlagForce)

	return cmd
}

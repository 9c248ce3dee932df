package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/terminal"
)

var getwd = os.Getwd
var isTerminal = terminal.IsInteractive

// newRootCmd builds the devbed command tree. Errors are printed once by
// runMain, so cobra's own error and usage echo are silenced; flag misuse is
// reported here with a usage hint and exits 2 through SilentExitError.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.RootUsageHintFmt, cmd.CommandPath())
		return &SilentExitError{Code: 2}
	})

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newWizardCmd())
	cmd.AddCommand(newMcpCmd())

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/wizard"
)

var runWizard = func(root string) error {
	return wizard.Run(root, wizard.NewHuhUI())
}

func newWizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.WizardUse,
		Short: messages.WizardShort,
		Long:  messages.WizardLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRepoRoot()
			if err != nil {
				return err
			}
			return runWizard(root)
		},
	}
}

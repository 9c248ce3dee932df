package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oliworks/devbed/internal/install"
	"github.com/oliworks/devbed/internal/messages"
)

var installRun = install.Run
var statDevbedPath = os.Stat

func newInitCmd() *cobra.Command {
	var noWizard bool
	var force bool

	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveInitRoot()
			if err != nil {
				return err
			}
			devbedPath := filepath.Join(root, ".devbed")
			if info, err := statDevbedPath(devbedPath); err == nil {
				if !info.IsDir() {
					return fmt.Errorf(messages.RootPathNotDirFmt, devbedPath)
				}
				if !force {
					return errors.New(messages.InitAlreadyInitialized)
				}
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf(messages.InstallStatFmt, devbedPath, err)
			}
			if err := installRun(root, install.Options{Overwrite: force, System: install.RealSystem{}}); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.InitCompleteFmt, root)
			if noWizard || !isTerminal() {
				_, _ = fmt.Fprintln(out, messages.InitNextSteps)
				return nil
			}
			run, err := promptYesNo(cmd.InOrStdin(), out, messages.InitRunWizardPrompt, true)
			if err != nil {
				return err
			}
			if !run {
				_, _ = fmt.Fprintln(out, messages.InitNextSteps)
				return nil
			}
			return runWizard(root)
		},
	}

	cmd.Flags().BoolVar(&noWizard, "no-wizard", false, messages.InitFlagNoWizard)
	cmd.Flags().BoolVar(&force, "force", false, messages.InitFlagForce)

	return cmd
}

// promptYesNo asks a yes/no question and returns the user's choice or an error.
// defaultYes controls the result when the user provides an empty response.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		if defaultYes {
			if _, err := fmt.Fprintf(out, messages.PromptYesDefaultFmt, prompt); err != nil {
				return false, err
			}
		} else {
			if _, err := fmt.Fprintf(out, messages.PromptNoDefaultFmt, prompt); err != nil {
				return false, err
			}
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			if err == nil {
				return defaultYes, nil
			}
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponseFmt, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}

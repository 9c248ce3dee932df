//go:build !windows

package wizard

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
)

// driveFormWithKeys feeds raw key bytes through Bubble Tea's input parser
// into a form assembled from the same pieces prompt uses (formKeys,
// abortFilter, withFixedHints) and returns the abort classification. Unlike
// the stubbed-runFormFunc tests, this exercises the whole path from byte to
// errWizardBack/errWizardCancelled, including huh's Quit binding and the
// InterruptMsg rewrite.
func driveFormWithKeys(t *testing.T, keyBytes []byte) error {
	t.Helper()

	inputR, inputW := io.Pipe()
	t.Cleanup(func() { _ = inputR.Close() })
	t.Cleanup(func() { _ = inputW.Close() })

	ui := &HuhUI{isTerminal: func() bool { return true }}

	var val string
	form := huh.NewForm(
		huh.NewGroup(
			withFixedHints(huh.NewInput().Title("Keys Test").Value(&val)),
		),
	)
	form.WithAccessible(false)
	form.WithKeyMap(formKeys())
	form.WithProgramOptions(
		tea.WithInput(inputR),
		tea.WithOutput(io.Discard),
		tea.WithFilter(ui.abortFilter()),
	)

	go func() {
		// Let program startup finish so the first byte lands in the input
		// parser instead of racing initialization.
		time.Sleep(50 * time.Millisecond)
		_, _ = inputW.Write(keyBytes)
		// Hold the stream open past bubbletea's escape-sequence window so a
		// lone Esc byte is read as a standalone Esc keypress.
		time.Sleep(350 * time.Millisecond)
		_ = inputW.Close()
	}()

	done := make(chan error, 1)
	go func() {
		err := form.Run()
		if errors.Is(err, huh.ErrUserAborted) {
			if ui.sawCtrlC {
				err = errWizardCancelled
			} else {
				err = errWizardBack
			}
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("form did not exit within timeout")
		return nil
	}
}

func TestKeyedForm_EscMapsToBack(t *testing.T) {
	// 0x1b alone, with no follow-up bytes inside the parser's escape window,
	// is read as KeyEscape.
	err := driveFormWithKeys(t, []byte{0x1b})
	assert.ErrorIs(t, err, errWizardBack)
}

func TestKeyedForm_CtrlCMapsToCancelled(t *testing.T) {
	// 0x03 is read as KeyCtrlC, which the filter records before the abort.
	err := driveFormWithKeys(t, []byte{0x03})
	assert.ErrorIs(t, err, errWizardCancelled)
}

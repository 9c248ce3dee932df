package wizard

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/terminal"
)

// UI defines the interaction methods.
type UI interface {
	Select(title string, options []string, current *string) error
	MultiSelect(title string, options []string, selected *[]string) error
	Confirm(title string, value *bool) error
	Input(title string, description string, value *string) error
	Note(title string, body string) error
}

// HuhUI implements UI using charmbracelet/huh. Each prompt runs as its own
// single-field form. Esc aborts the form and maps to back navigation;
// Ctrl+C aborts and maps to a hard exit.
type HuhUI struct {
	isTerminal func() bool
	sawCtrlC   bool // recorded by abortFilter while a form runs
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.WizardRequiresTerminal)
}

// prompt wraps field in a one-field form, runs it, and classifies the way it
// ended. huh reports Esc and Ctrl+C identically as ErrUserAborted, so the
// message filter records whether a Ctrl+C keypress was seen and the two are
// told apart here: Ctrl+C becomes errWizardCancelled, Esc becomes
// errWizardBack.
func (ui *HuhUI) prompt(field huh.Field) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	ui.sawCtrlC = false
	form := huh.NewForm(huh.NewGroup(withFixedHints(field)))
	form.WithKeyMap(formKeys())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(ui.abortFilter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		if ui.sawCtrlC {
			return errWizardCancelled
		}
		return errWizardBack
	}
	return err
}

// abortFilter returns a tea.WithFilter callback with two jobs. A KeyCtrlC
// KeyMsg sets sawCtrlC; in raw mode keyboard Ctrl+C arrives as a key event
// rather than an OS signal, and it is delivered before the InterruptMsg that
// huh's CancelCmd produces, so the flag is set by the time the abort
// completes. An InterruptMsg is rewritten to QuitMsg so bubbletea shuts down
// through the graceful path and clears the rendered form.
func (ui *HuhUI) abortFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
			ui.sawCtrlC = true
		}
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// formKeys builds the keymap shared by all wizard forms. Quit carries both
// Esc and Ctrl+C so either aborts the form; prompt then tells them apart.
// The per-component Prev and Next bindings never fire (the Quit binding
// intercepts both keys first) and exist purely so the help bar reads
// "esc back" and "ctrl+c exit".
func formKeys() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	back := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	exit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit"))

	km.Select.Prev, km.Select.Next = back, exit
	km.MultiSelect.Prev, km.MultiSelect.Next = back, exit
	km.Confirm.Prev, km.Confirm.Next = back, exit
	km.Input.Prev, km.Input.Next = back, exit
	km.Note.Prev, km.Note.Next = back, exit

	// Wizard option lists are a handful of entries; filter mode would fight
	// the Esc-to-back binding for the Esc key.
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)

	return km
}

// fixedHints keeps the Prev and Next help-bar hints visible on single-field
// forms. huh's UpdateFieldPositions runs WithPosition on every field (during
// NewForm and again on each KeyMsg), disabling Prev on the first field and
// Next on the last; with exactly one field both hints would always vanish.
// The wrapper lets the positional update happen and then re-applies the
// wizard keymap on top of it.
type fixedHints struct {
	huh.Field
	km *huh.KeyMap
}

func withFixedHints(field huh.Field) huh.Field {
	return &fixedHints{Field: field, km: formKeys()}
}

// Update delegates to the inner field and keeps the wrapper in place, since
// group.Update stores whatever model comes back.
func (f *fixedHints) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := f.Field.Update(msg)
	if field, ok := model.(huh.Field); ok {
		f.Field = field
	}
	return f, cmd
}

// WithPosition applies the positional update, then restores the hint
// bindings it disabled.
func (f *fixedHints) WithPosition(p huh.FieldPosition) huh.Field {
	f.Field.WithPosition(p)
	f.WithKeyMap(f.km)
	return f
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, options []string, current *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	return ui.prompt(huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(current))
}

// MultiSelect renders a multi-choice prompt.
func (ui *HuhUI) MultiSelect(title string, options []string, selected *[]string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	return ui.prompt(huh.NewMultiSelect[string]().
		Title(title).
		Filterable(false).
		Options(opts...).
		Value(selected))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.prompt(huh.NewConfirm().
		Title(title).
		Value(value))
}

// Input renders a text input prompt with an explanatory description line.
func (ui *HuhUI) Input(title string, description string, value *string) error {
	input := huh.NewInput().
		Title(title).
		Value(value)
	if description != "" {
		input = input.Description(description)
	}
	return ui.prompt(input)
}

// Note renders an informational note screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.prompt(huh.NewNote().
		Title(title).
		Description(body))
}

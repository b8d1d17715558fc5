package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter asks yes/no questions. def is the answer used when there is
// nobody to ask.
type Prompter interface {
	Confirm(question string, def bool) (bool, error)
}

// TerminalPrompter asks with a huh confirm field when in is a terminal and
// answers def otherwise.
type TerminalPrompter struct {
	in *os.File
}

// NewTerminalPrompter creates a prompter reading from in.
func NewTerminalPrompter(in *os.File) *TerminalPrompter {
	return &TerminalPrompter{in: in}
}

// Confirm implements Prompter.
func (p *TerminalPrompter) Confirm(question string, def bool) (bool, error) {
	if p.in == nil || !term.IsTerminal(int(p.in.Fd())) {
		return def, nil
	}

	answer := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&answer),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrAborted
		}
		return false, fmt.Errorf("prompt: %w", err)
	}
	return answer, nil
}

// confirmOrAbort returns ErrAborted unless yes is set or the user agrees.
func confirmOrAbort(p Prompter, yes bool, question string, def bool) error {
	if yes {
		return nil
	}
	ok, err := p.Confirm(question, def)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

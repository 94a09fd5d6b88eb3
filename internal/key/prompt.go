package key

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when a masked prompt is requested without a terminal on stdin.
var ErrNotTerminal = errors.New("key input prompt requires a terminal")

// TerminalPrompter reads masked input from a terminal.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stderr and reads from stdin.
func NewTerminalPrompter() TerminalPrompter {
	return TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Prompt writes label and reads a line without echoing it.
// An empty line counts as a cancelled prompt.
func (p TerminalPrompter) Prompt(label string) (string, error) {
	fd := int(p.In.Fd()) //nolint:gosec // file descriptors fit in an int

	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	fmt.Fprintln(p.Out, "Please provide the information you want to use to encrypt or decrypt.")
	fmt.Fprintln(p.Out, "Information that you type will be masked and not visible.")
	fmt.Fprintf(p.Out, "%s: ", label)

	raw, err := term.ReadPassword(fd)

	fmt.Fprintln(p.Out)

	if err != nil {
		return "", fmt.Errorf("reading key input: %w", err)
	}

	if len(raw) == 0 {
		return "", ErrCancelled
	}

	return string(raw), nil
}

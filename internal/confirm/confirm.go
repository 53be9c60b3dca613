// Package confirm provides yes/no prompts for destructive commands
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Prompter asks on a terminal-like stream pair
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading answers from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm writes "<prompt> [y/N]: " and accepts y or yes in any case.
// End of input counts as no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	answer, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if err == io.EOF && answer == "" {
		_, _ = fmt.Fprintln(p.out)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Always answers every prompt with the same value
type Always bool

// Confirm implements Confirmer
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Package prompt asks the operator yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// IsInteractive returns true if stdin is a terminal. It returns false for
// piped or redirected input.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Prompter reads answers from reader and writes questions to writer.
type Prompter struct {
	scanner *bufio.Scanner
	writer  io.Writer
}

// NewPrompter creates a Prompter. Use os.Stdin and os.Stderr for normal
// operation, or buffers for testing.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(reader),
		writer:  writer,
	}
}

// Confirm writes question followed by " [y/N] " and blocks until a line is
// read. Only "y" or "yes" (any case) confirm. Any other answer, including an
// empty line or end of input, declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N] ", question)

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return false, fmt.Errorf("error reading input: %w", err)
		}
		// EOF reached, treat as no
		fmt.Fprintln(p.writer)
		return false, nil
	}

	switch strings.TrimSpace(strings.ToLower(p.scanner.Text())) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

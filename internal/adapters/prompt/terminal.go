// Package prompt implements the blocking operator prompt on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Terminal asks questions on out and reads answers line by line from in,
// re-prompting until a valid choice or an accepted default.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a prompter bound to stdin/stdout.
func NewTerminal() *Terminal {
	return New(os.Stdin, os.Stdout)
}

// New returns a prompter over arbitrary streams.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Ask blocks until the operator answers. A non-empty answer must be one of
// choices when choices are given; an empty answer accepts def when def is
// non-empty. There is no timeout; EOF on the input aborts with an error.
func (t *Terminal) Ask(question, def string, choices []string) (string, error) {
	choiceStr := ""
	if len(choices) > 0 {
		choiceStr = fmt.Sprintf(" (%s)", strings.Join(choices, "/"))
	}
	defStr := ""
	if def != "" {
		defStr = fmt.Sprintf(" [%s]", def)
	}

	for {
		fmt.Fprintf(t.out, "%s%s:%s ", question, choiceStr, defStr)
		line, err := t.in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("operator input closed: %w", err)
		}
		val := strings.TrimRight(line, "\r\n")
		if val != "" {
			if len(choices) == 0 || contains(choices, val) {
				return val, nil
			}
			continue
		}
		if def != "" {
			return def, nil
		}
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

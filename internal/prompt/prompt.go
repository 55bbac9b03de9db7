// Package prompt provides interactive selection helpers for picking values
// from lists and maps on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sentinel errors for selection operations.
var (
	// ErrKeyNotFound indicates the operator's input did not match any key
	// of the offered map. Matching is exact and case-sensitive.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotAnOption indicates the operator's input was not one of the
	// listed options.
	ErrNotAnOption = errors.New("not one of the listed options")
)

const question = "Which of the above would you like to select? "

var labelStyle = lipgloss.NewStyle().Bold(true)

// Prompter renders selection prompts to out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter. Typically in is os.Stdin and out os.Stdout;
// tests inject buffers.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// PrintList renders the items under a bold label and, if there are any,
// prompts for a selection. The operator's answer is returned verbatim:
// there is deliberately NO check that it matches one of the items, so
// free-text answers pass through. Use SelectFromList for a validating
// variant. With no items, nothing is asked and "" is returned.
func (p *Prompter) PrintList(label string, items []string) (string, error) {
	p.header(label)
	if len(items) == 0 {
		return "", nil
	}

	fmt.Fprintln(p.out)
	for _, item := range items {
		fmt.Fprintln(p.out, item)
	}
	fmt.Fprintln(p.out)

	return p.ask()
}

// SelectFromList renders like PrintList but returns ErrNotAnOption if the
// answer is not one of the items.
func (p *Prompter) SelectFromList(label string, items []string) (string, error) {
	answer, err := p.PrintList(label, items)
	if err != nil {
		return "", err
	}
	if !slices.Contains(items, answer) {
		return "", fmt.Errorf("%w: %q", ErrNotAnOption, answer)
	}
	return answer, nil
}

// SelectFromMap renders the keys of m (sorted) and returns the value for
// the key the operator types. The lookup is exact and case-sensitive; a
// miss returns ErrKeyNotFound.
func (p *Prompter) SelectFromMap(label string, m map[string]string) (string, error) {
	p.header(label)

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Fprintln(p.out)
	for _, k := range keys {
		fmt.Fprintln(p.out, k)
	}
	fmt.Fprintln(p.out)

	key, err := p.ask()
	if err != nil {
		return "", err
	}
	value, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return value, nil
}

func (p *Prompter) header(label string) {
	fmt.Fprintln(p.out, "---------------------")
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, labelStyle.Render("Below are "+label))
}

// ask prompts and reads one line. Only the trailing line ending is
// stripped; interior whitespace is the operator's business.
func (p *Prompter) ask() (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("read selection: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Package fuzzy lets the user pick repositories interactively, through fzf
// when a terminal is available and a numbered list otherwise.
package fuzzy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Option represents a selectable option in the fuzzy finder
type Option struct {
	Value       string
	Description string
}

// MultiSelector picks any number of options
type MultiSelector interface {
	SetOptions(options []Option) error
	SetPrompt(prompt string)
	SelectMany() ([]string, error)
}

// Finder is a numbered-list selector reading choices from a line of input
type Finder struct {
	prompt  string
	options []Option
	in      io.Reader
	out     io.Writer
}

// New creates a new finder on the process stdin and stderr
func New(prompt string) *Finder {
	return NewWithIO(prompt, os.Stdin, os.Stderr)
}

// NewWithIO creates a new finder reading from in and rendering to out
func NewWithIO(prompt string, in io.Reader, out io.Writer) *Finder {
	return &Finder{
		prompt:  prompt,
		options: make([]Option, 0),
		in:      in,
		out:     out,
	}
}

// SetOptions replaces the available options
func (f *Finder) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}
	f.options = append(make([]Option, 0, len(options)), options...)
	return nil
}

// SetPrompt updates the prompt message
func (f *Finder) SetPrompt(prompt string) {
	f.prompt = prompt
}

// SelectMany lists the options and reads a selection such as "1,3-5" or
// "all". Values are returned in list order without duplicates.
func (f *Finder) SelectMany() ([]string, error) {
	if len(f.options) == 0 {
		return nil, fmt.Errorf("no options available")
	}

	_, _ = fmt.Fprintln(f.out, f.prompt)
	_, _ = fmt.Fprintln(f.out, strings.Repeat("-", len(f.prompt)))
	for i, option := range f.options {
		line := fmt.Sprintf("%d. %s", i+1, option.Value)
		if option.Description != "" {
			line += " - " + option.Description
		}
		_, _ = fmt.Fprintln(f.out, line)
	}
	_, _ = fmt.Fprintf(f.out, "\nSelect options (e.g. 1,3-%d or all): ", len(f.options))

	input, err := bufio.NewReader(f.in).ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(input) == "") {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	indexes, err := parseSelection(strings.TrimSpace(input), len(f.options))
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(indexes))
	for _, i := range indexes {
		values = append(values, f.options[i].Value)
	}
	return values, nil
}

// parseSelection turns "1,3-5" into sorted zero-based indexes
func parseSelection(input string, count int) ([]int, error) {
	if input == "" {
		return nil, fmt.Errorf("no selection made")
	}

	chosen := make([]bool, count)
	if strings.EqualFold(input, "all") {
		for i := range chosen {
			chosen[i] = true
		}
	} else {
		for _, part := range strings.Split(input, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			lo, hi, isRange := strings.Cut(part, "-")
			first, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid selection: %s", part)
			}
			last := first
			if isRange {
				if last, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
					return nil, fmt.Errorf("invalid selection: %s", part)
				}
			}
			if first < 1 || last > count || first > last {
				return nil, fmt.Errorf("selection out of range: %s", part)
			}
			for n := first; n <= last; n++ {
				chosen[n-1] = true
			}
		}
	}

	var indexes []int
	for i, ok := range chosen {
		if ok {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return nil, fmt.Errorf("no selection made")
	}
	return indexes, nil
}

var _ MultiSelector = (*Finder)(nil)

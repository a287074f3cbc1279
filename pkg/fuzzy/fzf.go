package fuzzy

import (
	"fmt"
	"strings"

	fzf "github.com/junegunn/fzf/src"
)

const descriptionSeparator = "  │  "

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// FzfFinder implements multi-selection using the fzf library
type FzfFinder struct {
	options  []Option
	prompt   string
	runner   FzfRunner
	fallback MultiSelector
}

// NewFzf creates a new fzf-style fuzzy finder
func NewFzf(prompt string) *FzfFinder {
	return NewFzfWithRunner(prompt, &DefaultFzfRunner{})
}

// NewFzfWithRunner creates a new fzf-style fuzzy finder with a custom runner (for testing)
func NewFzfWithRunner(prompt string, runner FzfRunner) *FzfFinder {
	return &FzfFinder{
		prompt:   prompt,
		options:  make([]Option, 0),
		runner:   runner,
		fallback: New(prompt),
	}
}

// SetOptions sets the available options for selection
func (f *FzfFinder) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}

	f.options = make([]Option, len(options))
	copy(f.options, options)
	return nil
}

// SetPrompt sets the display prompt
func (f *FzfFinder) SetPrompt(prompt string) {
	f.prompt = prompt
}

// SetFallback replaces the selector used when fzf cannot run
func (f *FzfFinder) SetFallback(fallback MultiSelector) {
	f.fallback = fallback
}

// SelectMany runs fzf in multi mode. Tab marks entries, Enter accepts.
func (f *FzfFinder) SelectMany() ([]string, error) {
	if len(f.options) == 0 {
		return nil, fmt.Errorf("no options available")
	}

	args := []string{
		"--prompt=" + f.prompt + " ",
		"--height=40%",
		"--layout=reverse",
		"--multi",
		"--cycle",
		"--extended",
		"--algo=v2",
		"--tiebreak=length",
		"--no-mouse",
		"--border=none",
		"--delimiter=" + descriptionSeparator,
		"--nth=1",
	}

	opts, err := fzf.ParseOptions(true, args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fzf options: %w", err)
	}

	input := make(chan string, len(f.options))
	for _, option := range f.options {
		displayText := option.Value
		if option.Description != "" {
			displayText = option.Value + descriptionSeparator + option.Description
		}
		input <- displayText
	}
	close(input)

	output := make(chan string, len(f.options))
	opts.Input = input
	opts.Output = output

	exitCode, err := f.runner.Run(opts)
	close(output)
	if err != nil {
		return f.fallbackSelect()
	}

	switch exitCode {
	case fzf.ExitOk:
	case fzf.ExitInterrupt, fzf.ExitNoMatch:
		return nil, fmt.Errorf("fzf selection cancelled")
	default:
		return nil, fmt.Errorf("fzf exited with code %d", exitCode)
	}

	var selected []string
	for line := range output {
		value, _, _ := strings.Cut(strings.TrimSpace(line), descriptionSeparator)
		if value = strings.TrimSpace(value); value != "" {
			selected = append(selected, value)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no selection made")
	}
	return selected, nil
}

// fallbackSelect uses the numbered finder when fzf fails to start
func (f *FzfFinder) fallbackSelect() ([]string, error) {
	if err := f.fallback.SetOptions(f.options); err != nil {
		return nil, err
	}
	f.fallback.SetPrompt(f.prompt)
	return f.fallback.SelectMany()
}

var _ MultiSelector = (*FzfFinder)(nil)

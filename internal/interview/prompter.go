package interview

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ConsolePrompter asks questions on the terminal via promptui.
type ConsolePrompter struct{}

func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{}
}

func (p *ConsolePrompter) Text(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: def,
	}
	if validate != nil {
		prompt.Validate = promptui.ValidateFunc(validate)
	}
	v, err := prompt.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	return v, nil
}

func (p *ConsolePrompter) Confirm(label string, def bool) (bool, error) {
	defStr := "n"
	if def {
		defStr = "y"
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Default:   defStr,
	}
	_, err := prompt.Run()
	if err != nil {
		// promptui reports a declined confirm as ErrAbort.
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, mapPromptErr(err)
	}
	return true, nil
}

func (p *ConsolePrompter) Select(label string, options []Option, defValue string) (string, error) {
	labels := make([]string, len(options))
	cursor := 0
	for i, o := range options {
		labels[i] = o.Label
		if o.Value == defValue {
			cursor = i
		}
	}
	sel := promptui.Select{
		Label:     label,
		Items:     labels,
		CursorPos: cursor,
	}
	i, _, err := sel.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	return options[i].Value, nil
}

func mapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrCanceled
	}
	return fmt.Errorf("prompt failed: %w", err)
}

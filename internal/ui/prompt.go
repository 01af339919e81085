package ui

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
)

// PromptModel asks the user to select a model identifier.
func PromptModel(current string) (string, error) {
	options := []string{
		"llama-3.1-sonar-small-128k-online",
		"llama-3.1-sonar-large-128k-online",
		"sonar",
		"sonar-pro",
	}

	def := options[0]
	for _, opt := range options {
		if opt == current {
			def = opt
		}
	}

	var model string
	prompt := &survey.Select{
		Message: "Select a model:",
		Options: options,
		Default: def,
	}

	if err := survey.AskOne(prompt, &model); err != nil {
		return "", err
	}

	return model, nil
}

// PromptMaxTokens asks the user for the completion token bound.
func PromptMaxTokens(current int) (int, error) {
	var answer string
	prompt := &survey.Input{
		Message: "Max tokens per answer (small values truncate but keep costs down):",
		Default: strconv.Itoa(current),
	}

	validator := func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("expected a string")
		}
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return fmt.Errorf("enter a positive integer")
		}
		return nil
	}

	if err := survey.AskOne(prompt, &answer, survey.WithValidator(validator)); err != nil {
		return 0, err
	}

	return strconv.Atoi(answer)
}

// ShowSuccess displays a success message
func ShowSuccess(message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Printf("✓ %s\n", message)
}

// ShowError displays an error message
func ShowError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Printf("✗ %s\n", message)
}

// ShowWarning displays a warning message
func ShowWarning(message string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Printf("! %s\n", message)
}

// ShowInfo displays an info message
func ShowInfo(message string) {
	blue := color.New(color.FgBlue)
	blue.Println(message)
}

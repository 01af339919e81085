// Package prompt assembles the system instruction and user message sent to
// the API from the user's question and any collected local context.
package prompt

import (
	"fmt"

	"github.com/trozzelle/perplexity-shell/internal/inspect"
	"github.com/trozzelle/perplexity-shell/internal/perplexity"
)

// Mode selects which query flavor governs the template and default question.
type Mode string

const (
	ModeGeneral  Mode = "general"
	ModeFileInfo Mode = "file_info"
	ModeCmdHelp  Mode = "cmd_help"
)

// Input is everything the builder needs for one query.
type Input struct {
	Mode     Mode
	Question string
	File     *inspect.FileContext
	Command  *inspect.CommandContext
}

// DefaultQuestion returns the question used when the user supplies none.
func DefaultQuestion(mode Mode) string {
	switch mode {
	case ModeFileInfo:
		return "What is this file type and what tools are commonly used to work with it?"
	case ModeCmdHelp:
		return "What does this command do and how is it commonly used?"
	default:
		return ""
	}
}

const (
	generalSystem = "Provide clear, structured responses with an explanation and practical examples."

	fileSystem = "You are a helpful assistant explaining files and file formats to a user at a terminal. " +
		"Be concise and practical."

	cmdSystem = "You are a helpful assistant explaining shell commands to a user at a terminal. " +
		"Be concise and practical."
)

// Build returns the system instruction and user message for the input.
// Escaping is not this package's concern: the messages travel inside a
// struct serialized by encoding/json, so quotes and newlines in the question
// survive the wire intact.
func Build(in Input) (system, user string) {
	question := in.Question
	if question == "" {
		question = DefaultQuestion(in.Mode)
	}

	switch in.Mode {
	case ModeFileInfo:
		user = fmt.Sprintf(`File: %s
File type: %s
File size: %s
Created: %s

Question: %s

Please provide a clear explanation and practical examples.`,
			in.File.Path, in.File.Type, in.File.Size, in.File.Created, question)
		return fileSystem, user

	case ModeCmdHelp:
		manExists := "no"
		if in.Command.ManPage {
			manExists = "yes"
		}
		user = fmt.Sprintf(`Command: %s
Command type: %s
Man page exists: %s

Question: %s

Please provide a clear explanation and practical examples.`,
			in.Command.Name, in.Command.Type, manExists, question)
		return cmdSystem, user

	default:
		return generalSystem, question
	}
}

// NewChatRequest builds the full wire request for the input. structured asks
// the API to answer in the explanation/examples JSON schema.
func NewChatRequest(model string, maxTokens int, structured bool, in Input) *perplexity.ChatRequest {
	system, user := Build(in)

	req := &perplexity.ChatRequest{
		Model: model,
		Messages: []perplexity.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: maxTokens,
	}

	if structured {
		req.ResponseFormat = perplexity.NewStructuredFormat()
		req.Messages[0].Content = system +
			" Please output a JSON object with the following fields: explanation, examples."
	}

	return req
}

package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trozzelle/perplexity-shell/internal/inspect"
	"github.com/trozzelle/perplexity-shell/internal/perplexity"
)

func TestDefaultQuestion(t *testing.T) {
	assert.Empty(t, DefaultQuestion(ModeGeneral))
	assert.NotEmpty(t, DefaultQuestion(ModeFileInfo))
	assert.NotEmpty(t, DefaultQuestion(ModeCmdHelp))
}

func TestBuildGeneral(t *testing.T) {
	system, user := Build(Input{Mode: ModeGeneral, Question: "what is zsh?"})

	assert.Equal(t, "what is zsh?", user)
	assert.NotEmpty(t, system)
}

func TestBuildFileInfo(t *testing.T) {
	system, user := Build(Input{
		Mode:     ModeFileInfo,
		Question: "can I edit this by hand?",
		File: &inspect.FileContext{
			Path:    "/tmp/archive.tar.gz",
			Type:    "application/gzip",
			Size:    "1.2 MB",
			Created: "Mon, 02 Jan 2006 15:04:05 MST",
		},
	})

	assert.NotEmpty(t, system)
	assert.Contains(t, user, "File: /tmp/archive.tar.gz")
	assert.Contains(t, user, "File type: application/gzip")
	assert.Contains(t, user, "File size: 1.2 MB")
	assert.Contains(t, user, "Question: can I edit this by hand?")
}

func TestBuildCmdHelp(t *testing.T) {
	_, user := Build(Input{
		Mode: ModeCmdHelp,
		Command: &inspect.CommandContext{
			Name:    "rsync",
			Type:    "rsync is /usr/bin/rsync",
			ManPage: true,
		},
	})

	assert.Contains(t, user, "Command: rsync")
	assert.Contains(t, user, "Command type: rsync is /usr/bin/rsync")
	assert.Contains(t, user, "Man page exists: yes")
	// no question supplied, the mode default fills in
	assert.Contains(t, user, "Question: "+DefaultQuestion(ModeCmdHelp))
}

func TestBuildCmdHelpNoManPage(t *testing.T) {
	_, user := Build(Input{
		Mode:    ModeCmdHelp,
		Command: &inspect.CommandContext{Name: "frobnicate"},
	})

	assert.Contains(t, user, "Command type: \n")
	assert.Contains(t, user, "Man page exists: no")
}

func TestNewChatRequest(t *testing.T) {
	req := NewChatRequest("test-model", 125, false, Input{
		Mode:     ModeGeneral,
		Question: "hello",
	})

	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, 125, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "hello", req.Messages[1].Content)
	assert.Nil(t, req.ResponseFormat)
}

func TestNewChatRequestStructured(t *testing.T) {
	req := NewChatRequest("test-model", 125, true, Input{
		Mode:     ModeGeneral,
		Question: "hello",
	})

	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, "json_schema", req.ResponseFormat.Type)
	assert.Contains(t, req.Messages[0].Content, "explanation, examples")
}

// Questions containing quotes and newlines must survive a trip through the
// wire encoding exactly, not as literal backslash sequences.
func TestQuestionJSONRoundTrip(t *testing.T) {
	question := "what does \"set -e\" do?\nand why?"

	req := NewChatRequest("test-model", 125, false, Input{
		Mode:     ModeGeneral,
		Question: question,
	})

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded perplexity.ChatRequest
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Messages, 2)
	assert.Equal(t, question, decoded.Messages[1].Content)
}

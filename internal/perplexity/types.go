package perplexity

import (
	"encoding/json"
	"fmt"
)

// Message is a single chat message in the Perplexity wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat-completions POST.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat asks the API to constrain the answer to a JSON schema.
type ResponseFormat struct {
	Type       string     `json:"type"`
	JSONSchema JSONSchema `json:"json_schema"`
}

// JSONSchema wraps a raw schema object.
type JSONSchema struct {
	Schema map[string]interface{} `json:"schema"`
}

// NewStructuredFormat returns the explanation/examples response schema.
func NewStructuredFormat() *ResponseFormat {
	return &ResponseFormat{
		Type: "json_schema",
		JSONSchema: JSONSchema{
			Schema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"explanation": map[string]interface{}{
						"type":        "string",
						"description": "Main explanation text",
					},
					"examples": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "List of examples or key points",
					},
				},
				"required": []string{"explanation", "examples"},
			},
		},
	}
}

// Citation is a source reference returned alongside the answer. The API has
// shipped two shapes for the citations array: plain URL strings and
// {text, url} objects. Both are accepted; the object form keeps its text.
type Citation struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// UnmarshalJSON accepts either a JSON string or a {text, url} object.
func (c *Citation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = ""
		c.URL = s
		return nil
	}

	type citationObj Citation
	var obj citationObj
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("citation is neither string nor object: %w", err)
	}
	*c = Citation(obj)
	return nil
}

// ChatResponse is the parsed chat-completions response body.
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Citations []Citation `json:"citations"`
}

// Answer returns the content of the first choice.
func (r *ChatResponse) Answer() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// ParseResponse decodes a raw response body and validates that it carries at
// least one choice with message content.
func ParseResponse(body []byte) (*ChatResponse, error) {
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &MalformedResponseError{Reason: "response has no choices"}
	}
	if resp.Choices[0].Message.Content == "" {
		return nil, &MalformedResponseError{Reason: "first choice has no message content"}
	}
	return &resp, nil
}

package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultBaseURL is the hosted Perplexity API endpoint.
const DefaultBaseURL = "https://api.perplexity.ai"

// defaultTimeout bounds the single outbound call. The original shell path had
// no timeout at all; 30s matches the Python stage.
const defaultTimeout = 30 * time.Second

// Client issues chat-completions requests. Each invocation of the CLI sends
// exactly one request through a single Client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	debug      bool
}

// NewClient creates a client for the given API key and base URL. An empty
// baseURL selects the hosted endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetDebug enables diagnostic logging to stderr.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Complete POSTs the request and returns the raw response body. The caller
// owns parsing so it can spool the body to disk first.
func (c *Client) Complete(ctx context.Context, chatReq *ChatRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	if c.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Client: POST %s (model=%s, max_tokens=%d)\n",
			url, chatReq.Model, chatReq.MaxTokens)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if c.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Client: status %d, %d bytes\n", resp.StatusCode, len(body))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

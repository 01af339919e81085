package perplexity

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *ChatRequest {
	return &ChatRequest{
		Model: "test-model",
		Messages: []Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "what is a symlink?"},
		},
		MaxTokens: 125,
	}
}

func TestCompleteSuccess(t *testing.T) {
	var requests int
	var gotAuth, gotContentType, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Write([]byte(`{"choices":[{"message":{"content":"a symlink is a pointer"}}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)

	body, err := client.Complete(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "exactly one request per invocation")
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Contains(t, gotBody, `"model":"test-model"`)
	assert.Contains(t, gotBody, `"max_tokens":125`)

	resp, err := ParseResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "a symlink is a pointer", resp.Answer())
}

func TestCompleteAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", srv.URL)

	_, err := client.Complete(context.Background(), testRequest())

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid api key")
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)

	_, err := client.Complete(context.Background(), testRequest())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient("test-key", srv.URL)

	_, err := client.Complete(context.Background(), testRequest())

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Error(t, transportErr.Unwrap())
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client := NewClient("test-key", "")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

// Package llm_test provides unit tests for the llm package.
package llm_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/services/llm"
)

func TestNewOpenAIClient_Validation(t *testing.T) {
	_, err := llm.NewOpenAIClient(nil)
	assert.ErrorContains(t, err, "config is required")

	_, err = llm.NewOpenAIClient(&llm.OpenAIConfig{})
	assert.ErrorContains(t, err, "API key is required")
}

func TestOpenAIClient_Complete(t *testing.T) {
	// Arrange
	var got struct {
		Model    string     `json:"model"`
		Messages []llm.Turn `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"  Our gowns run true to size. "}}],"usage":{"prompt_tokens":10,"completion_tokens":6}}`)
	}))
	defer srv.Close()

	client, err := llm.NewOpenAIClient(&llm.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/", Model: "test-model"})
	require.NoError(t, err)
	history := []llm.Turn{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "Hello! How can I help?"},
	}

	// Act
	reply, err := client.Complete(context.Background(), "system prompt", history, "do gowns run small?")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Our gowns run true to size.", reply)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, llm.Turn{Role: llm.RoleSystem, Content: "system prompt"}, got.Messages[0])
	assert.Equal(t, "hi", got.Messages[1].Content)
	assert.Equal(t, llm.Turn{Role: llm.RoleUser, Content: "do gowns run small?"}, got.Messages[3])
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"overloaded"}`, wantMsg: "status=500"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: llm.ErrEmptyCompletion},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`, wantErr: llm.ErrEmptyCompletion},
		{name: "bad json", status: http.StatusOK, body: `{`, wantMsg: "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()
			client, err := llm.NewOpenAIClient(&llm.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), "sys", nil, "hello")

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestMockClient(t *testing.T) {
	ctx := context.Background()

	reply, err := llm.NewMockClient().Complete(ctx, "", nil, "hello")
	require.NoError(t, err)
	assert.Contains(t, reply, `"hello"`)

	reply, err = (&llm.MockClient{Reply: "canned"}).Complete(ctx, "", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "canned", reply)
}

package anthropic_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageServer(t *testing.T, status int, body map[string]any, gotRequest *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")
		if gotRequest != nil {
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, gotRequest)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("returns text and usage", func(t *testing.T) {
		t.Parallel()

		var req map[string]any
		ts := messageServer(t, http.StatusOK, map[string]any{
			"id":   "msg_1",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "# Acme\n\n"},
				{"type": "text", "text": "Report body."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 1000, "output_tokens": 250},
		}, &req)

		c := anthropic.NewCompleter("test-key", "", option.WithBaseURL(ts.URL))
		completion, err := c.Complete(context.Background(), "You are an analyst.", "Describe Acme.")

		require.NoError(t, err)
		assert.Equal(t, &companyintel.Completion{
			Text:         "# Acme\n\nReport body.",
			Model:        anthropic.DefaultModel,
			InputTokens:  1000,
			OutputTokens: 250,
		}, completion)

		assert.Equal(t, anthropic.DefaultModel, req["model"])
		system, ok := req["system"].([]any)
		require.True(t, ok)
		require.Len(t, system, 1)
		assert.Equal(t, "You are an analyst.", system[0].(map[string]any)["text"])
	})

	t.Run("returns error for response without text", func(t *testing.T) {
		t.Parallel()

		ts := messageServer(t, http.StatusOK, map[string]any{
			"id":          "msg_2",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "max_tokens",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 0},
		}, nil)

		c := anthropic.NewCompleter("test-key", "", option.WithBaseURL(ts.URL))
		_, err := c.Complete(context.Background(), "", "Describe Acme.")

		require.Error(t, err)
		assert.Contains(t, companyintel.ErrorMessage(err), "empty response")
	})

	t.Run("returns API error without retrying", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
		}))
		defer ts.Close()

		c := anthropic.NewCompleter("test-key", "", option.WithBaseURL(ts.URL))
		_, err := c.Complete(context.Background(), "", "Describe Acme.")

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("returns EINVALID for empty user prompt", func(t *testing.T) {
		t.Parallel()

		c := anthropic.NewCompleter("test-key", "")
		_, err := c.Complete(context.Background(), "system", "")

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})
}

func TestNewCompleter_DefaultsModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, anthropic.DefaultModel, anthropic.NewCompleter("k", "").Model())
	assert.Equal(t, "claude-sonnet-4-5-20250929", anthropic.NewCompleter("k", "claude-sonnet-4-5-20250929").Model())
}

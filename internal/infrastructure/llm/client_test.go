package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(&config.LLMConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "llama3-8b-8192",
		TimeoutSeconds: 5,
		MaxRetries:     maxRetries,
	})
}

func completionBody(content string) string {
	return fmt.Sprintf(`{"model":"llama3-8b-8192","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}],"usage":{"total_tokens":10}}`, content)
}

func TestClient_Complete(t *testing.T) {
	var receivedAuth string
	var receivedReq ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		receivedAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&receivedReq))
		fmt.Fprint(w, completionBody("hello there"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	content, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "hello there", content)
	assert.Equal(t, "Bearer test-key", receivedAuth)
	assert.Equal(t, "llama3-8b-8192", receivedReq.Model)
	require.Len(t, receivedReq.Messages, 1)
	assert.Equal(t, "hi", receivedReq.Messages[0].Content)
}

func TestClient_RetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, completionBody("recovered"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	content, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "应在两次失败后第三次成功")
}

func TestClient_ClientErrorIsFatal(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad request"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx 不应重试")
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "初次请求加两次重试")
}

func TestClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"model":"llama3-8b-8192","choices":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

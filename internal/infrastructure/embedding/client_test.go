package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmbeddingURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		expected string
	}{
		{name: "完整路径原样返回", baseURL: "https://api.openai.com/v1/embeddings", expected: "https://api.openai.com/v1/embeddings"},
		{name: "以 v1 结尾时追加", baseURL: "https://api.openai.com/v1", expected: "https://api.openai.com/v1/embeddings"},
		{name: "以 v1/ 结尾时追加", baseURL: "https://api.openai.com/v1/", expected: "https://api.openai.com/v1/embeddings"},
		{name: "裸域名补全路径", baseURL: "https://api.example.com", expected: "https://api.example.com/v1/embeddings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildEmbeddingURL(tt.baseURL))
		})
	}
}

func TestClient_EmbedTexts_RestoresOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 乱序返回，index 指明归属
		fmt.Fprint(w, `{"data":[{"index":1,"embedding":[0.2]},{"index":0,"embedding":[0.1]}],"model":"m"}`)
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{BaseURL: server.URL + "/v1", Model: "m"})
	vectors, err := client.EmbedTexts(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1}, vectors[0], "结果应按输入顺序还原")
	assert.Equal(t, []float32{0.2}, vectors[1])
}

func TestClient_EmbedTexts_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"index":0,"embedding":[0.1]}],"model":"m"}`)
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{BaseURL: server.URL + "/v1", Model: "m"})
	_, err := client.EmbedTexts(context.Background(), []string{"a", "b"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 vectors for 2 texts")
}

func TestClient_EmbedQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"index":0,"embedding":[0.5,0.6]}],"model":"m"}`)
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{BaseURL: server.URL + "/v1", Model: "m"})
	vector, err := client.EmbedQuery(context.Background(), "query text")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.6}, vector)
}

func TestClient_EmbedTexts_EmptyInput(t *testing.T) {
	client := NewClient(&config.EmbeddingConfig{BaseURL: "http://unused", Model: "m"})
	_, err := client.EmbedTexts(context.Background(), nil)
	assert.Error(t, err)
}

package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nutriassist/backend/internal/infrastructure/config"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/sethvargo/go-retry"
)

// Client Embedding API 客户端
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient 创建 Embedding 客户端
func NewClient(cfg *config.EmbeddingConfig) *Client {
	// 规范化 baseURL：移除末尾斜杠
	normalizedURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: normalizedURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: applog.NewModuleLogger("embedding", "client"),
	}
}

// EmbeddingRequest Embedding 请求
type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingResponse Embedding 响应
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// buildEmbeddingURL 构建 Embedding API URL
// 支持多种输入格式，智能拼接 /v1/embeddings 路径
func buildEmbeddingURL(baseURL string) string {
	if strings.Contains(baseURL, "/v1/embeddings") {
		return baseURL
	}
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL + "/embeddings"
	}
	if strings.HasSuffix(baseURL, "/v1/") {
		return baseURL + "embeddings"
	}
	return fmt.Sprintf("%s/v1/embeddings", baseURL)
}

// EmbedQuery 向量化单条查询文本
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("invalid embedding result")
	}
	return vectors[0], nil
}

// EmbedTexts 批量向量化文本
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts cannot be empty")
	}

	reqBody := EmbeddingRequest{
		Model: c.model,
		Input: texts,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := buildEmbeddingURL(c.baseURL)

	c.logger.Debug("Sending embedding request",
		"url", url,
		"batch_size", len(texts),
		"model", c.model,
	)

	var embResp EmbeddingResponse
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
		if reqErr != nil {
			return fmt.Errorf("failed to create request: %w", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return retry.RetryableError(fmt.Errorf("embedding API request failed: %w", doErr))
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			apiErr := fmt.Errorf("embedding API returned status %d: %s", resp.StatusCode, string(body))
			if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
				return retry.RetryableError(apiErr)
			}
			return apiErr
		}

		if decErr := json.NewDecoder(resp.Body).Decode(&embResp); decErr != nil {
			return fmt.Errorf("failed to decode embedding response: %w", decErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(embResp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding API returned %d vectors for %d texts", len(embResp.Data), len(texts))
	}

	// 按 index 排序还原输入顺序
	vectors := make([][]float32, len(texts))
	for _, item := range embResp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding API returned out-of-range index %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}

	c.logger.Debug("Embedding request successful",
		"vectors", len(vectors),
		"tokens", embResp.Usage.TotalTokens,
	)

	return vectors, nil
}

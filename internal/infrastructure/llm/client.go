package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/sethvargo/go-retry"
)

// Message Chat 消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest Chat API 请求
type ChatRequest struct {
	Messages []Message `json:"messages"`
	Model    string    `json:"model,omitempty"`
}

// ChatResponse Chat API 响应
type ChatResponse struct {
	ID      string `json:"id,omitempty"`
	Object  string `json:"object,omitempty"`
	Created int64  `json:"created,omitempty"`
	Model   string `json:"model,omitempty"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Client Chat Completion 客户端
// 上游返回的文本一律当作不可信的非结构化字符串，由调用方自行解析。
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient 创建 Chat Completion 客户端
func NewClient(cfg *config.LLMConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger: log.NewModuleLogger("llm", "client"),
	}
}

// Complete 发起一次补全调用，返回首个 choice 的原始文本
// 网络错误和 5xx/429 在有限次退避后重试，4xx 直接失败
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	reqBody := ChatRequest{
		Messages: messages,
		Model:    c.model,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var content string
	backoff := retry.WithMaxRetries(uint64(c.maxRetries), retry.NewExponential(500*time.Millisecond))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, attemptErr := c.doRequest(ctx, jsonData)
		if attemptErr != nil {
			return attemptErr
		}
		content = result
		return nil
	})
	if err != nil {
		return "", err
	}

	return content, nil
}

// doRequest 单次请求
func (c *Client) doRequest(ctx context.Context, jsonData []byte) (string, error) {
	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	c.logger.Debug("Sending completion request",
		"url", url,
		"model", c.model,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 网络层错误可重试
		return "", retry.RetryableError(fmt.Errorf("completion API request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := c.readResponseBody(resp)
		apiErr := fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, body)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return "", retry.RetryableError(apiErr)
		}
		return "", apiErr
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	c.logger.Debug("Completion request successful",
		"model", chatResp.Model,
		"tokens", chatResp.Usage.TotalTokens,
	)

	return chatResp.Choices[0].Message.Content, nil
}

// TestConnection 测试补全 API 连接
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Complete(ctx, []Message{
		{Role: "user", Content: "This is a connectivity test. Reply with the single word OK."},
	})
	if err != nil {
		return fmt.Errorf("LLM connection test failed: %w", err)
	}

	c.logger.Info("LLM connection test successful", "model", c.model)
	return nil
}

// readResponseBody 读取响应体
func (c *Client) readResponseBody(resp *http.Response) (string, error) {
	if resp.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

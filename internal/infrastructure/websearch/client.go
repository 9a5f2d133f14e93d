package websearch

import (
	"context"
	"fmt"
	"net/http"

	"log/slog"

	"github.com/go-resty/resty/v2"
	"github.com/nutriassist/backend/internal/domain/retrieval"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
)

// 确保 Client 实现了 retrieval.URLFinder 接口
var _ retrieval.URLFinder = (*Client)(nil)

// searchRequest 搜索 API 请求
type searchRequest struct {
	APIKey string `json:"api_key"`
	Query  string `json:"query"`
}

// searchResponse 搜索 API 响应
type searchResponse struct {
	Results []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"results"`
}

// Client 联网搜索客户端
// 调用外部搜索 API 获得候选 URL，再对每个 URL 做短超时存活探测，
// 只保留当前可访问的链接。探测失败只记录日志并跳过。
type Client struct {
	endpoint string
	apiKey   string
	rest     *resty.Client
	probe    *resty.Client
	logger   *slog.Logger
}

// NewClient 创建联网搜索客户端
func NewClient(cfg *config.WebSearchConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		rest:     resty.New(),
		probe:    resty.New().SetTimeout(cfg.ProbeTimeout()),
		logger:   applog.NewModuleLogger("websearch", "client"),
	}
}

// FindLiveURLs 搜索并返回存活的候选 URL，保持搜索结果的排序
func (c *Client) FindLiveURLs(ctx context.Context, query string) ([]string, error) {
	var result searchResponse

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(searchRequest{APIKey: c.apiKey, Query: query}).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("search API request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	c.logger.Info("Search API returned candidates", "count", len(result.Results))

	liveURLs := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		if r.URL == "" {
			continue
		}
		if c.isLive(ctx, r.URL) {
			liveURLs = append(liveURLs, r.URL)
		}
	}

	c.logger.Info("Liveness probe completed",
		"candidates", len(result.Results),
		"live", len(liveURLs),
	)

	return liveURLs, nil
}

// isLive 短超时存活探测
func (c *Client) isLive(ctx context.Context, url string) bool {
	resp, err := c.probe.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		c.logger.Debug("URL probe failed", "url", url, "error", err)
		return false
	}
	defer func() { _ = resp.RawBody().Close() }()

	if resp.StatusCode() != http.StatusOK {
		c.logger.Debug("URL probe rejected", "url", url, "status", resp.StatusCode())
		return false
	}
	return true
}

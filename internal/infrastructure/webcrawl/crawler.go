package webcrawl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"log/slog"

	"github.com/inbucket/html2text"
	"github.com/nutriassist/backend/internal/domain/retrieval"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"golang.org/x/sync/errgroup"
)

// 单页响应体上限，防止超大页面撑爆内存
const maxResponseSize = 1 << 20 // 1MB

const userAgent = "nutriassist-bot/1.0"

// 确保 Crawler 实现了 retrieval.PageFetcher 接口
var _ retrieval.PageFetcher = (*Crawler)(nil)

// Crawler 网页抓取器
// 小批量并发抓取，全部完成后统一返回（不做流式提前返回）。
// 单个 URL 失败只记录日志并从结果集中剔除，不重试；
// 全部失败时返回 retrieval.ErrNoContent，下游不得用空内容继续合成。
type Crawler struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCrawler 创建网页抓取器
func NewCrawler(cfg *config.WebSearchConfig) *Crawler {
	return &Crawler{
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout(),
		},
		logger: applog.NewModuleLogger("webcrawl", "crawler"),
	}
}

// FetchAll 并发抓取全部 URL 并转为纯文本
// 返回的段落顺序与输入 URL 顺序一致（失败的 URL 跳过）
func (c *Crawler) FetchAll(ctx context.Context, urls []string) ([]*retrieval.Passage, error) {
	if len(urls) == 0 {
		return nil, retrieval.ErrNoContent
	}

	c.logger.Info("Fetching pages", "count", len(urls))

	results := make([]*retrieval.Passage, len(urls))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			content, err := c.fetchOne(gCtx, url)
			if err != nil {
				// 逐 URL 失败软处理：记录并剔除
				c.logger.Warn("Failed to fetch page, skipping", "url", url, "error", err)
				return nil
			}
			mu.Lock()
			results[i] = &retrieval.Passage{Content: content, Source: url}
			mu.Unlock()
			return nil
		})
	}
	// fetchOne 的错误都被吞掉，这里只会因 ctx 取消而出错
	if err := g.Wait(); err != nil {
		return nil, err
	}

	passages := make([]*retrieval.Passage, 0, len(urls))
	for _, p := range results {
		if p != nil {
			passages = append(passages, p)
		}
	}

	c.logger.Info("Fetch completed",
		"requested", len(urls),
		"succeeded", len(passages),
	)

	if len(passages) == 0 {
		return nil, retrieval.ErrNoContent
	}
	return passages, nil
}

// fetchOne 抓取单个页面并转为纯文本
func (c *Crawler) fetchOne(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, maxResponseSize)
	text, err := html2text.FromReader(limitedReader, html2text.Options{
		OmitLinks:    true,
		PrettyTables: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to convert page to text: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("page yielded no text content")
	}
	return text, nil
}

package webcrawl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nutriassist/backend/internal/domain/retrieval"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCrawler() *Crawler {
	cfg := config.NewConfig()
	return NewCrawler(config.NewWebSearchConfig(cfg))
}

func htmlServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCrawler_FetchAll(t *testing.T) {
	first := htmlServer(t, "<html><body><p>first page content</p></body></html>", http.StatusOK)
	second := htmlServer(t, "<html><body><p>second page content</p></body></html>", http.StatusOK)

	crawler := newTestCrawler()
	passages, err := crawler.FetchAll(context.Background(), []string{first.URL, second.URL})

	require.NoError(t, err)
	require.Len(t, passages, 2)

	// 结果顺序与输入顺序一致
	assert.Contains(t, passages[0].Content, "first page content")
	assert.Equal(t, first.URL, passages[0].Source)
	assert.Contains(t, passages[1].Content, "second page content")
	assert.Equal(t, second.URL, passages[1].Source)
}

func TestCrawler_PartialFailure(t *testing.T) {
	good := htmlServer(t, "<html><body><p>usable content</p></body></html>", http.StatusOK)
	broken := htmlServer(t, "not found", http.StatusNotFound)

	crawler := newTestCrawler()
	passages, err := crawler.FetchAll(context.Background(), []string{broken.URL, good.URL})

	require.NoError(t, err, "单个 URL 失败不应使整体失败")
	require.Len(t, passages, 1)
	assert.Equal(t, good.URL, passages[0].Source)
}

func TestCrawler_AllFail(t *testing.T) {
	broken := htmlServer(t, "gone", http.StatusGone)

	crawler := newTestCrawler()
	passages, err := crawler.FetchAll(context.Background(), []string{broken.URL, "http://127.0.0.1:1/unreachable"})

	assert.ErrorIs(t, err, retrieval.ErrNoContent)
	assert.Empty(t, passages)
}

func TestCrawler_EmptyInput(t *testing.T) {
	crawler := newTestCrawler()
	_, err := crawler.FetchAll(context.Background(), nil)
	assert.ErrorIs(t, err, retrieval.ErrNoContent)
}

func TestCrawler_EmptyPageBody(t *testing.T) {
	empty := htmlServer(t, "<html><body></body></html>", http.StatusOK)

	crawler := newTestCrawler()
	_, err := crawler.FetchAll(context.Background(), []string{empty.URL})
	assert.ErrorIs(t, err, retrieval.ErrNoContent, "空文本页面视为抓取失败")
}

func TestCrawler_StripsMarkup(t *testing.T) {
	page := htmlServer(t, `<html><body><h1>Vitamin D</h1><script>var x=1;</script><p>supports bone health</p></body></html>`, http.StatusOK)

	crawler := newTestCrawler()
	passages, err := crawler.FetchAll(context.Background(), []string{page.URL})

	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Contains(t, passages[0].Content, "supports bone health")
	assert.NotContains(t, passages[0].Content, "<p>", "输出不应包含 HTML 标签")
	assert.NotContains(t, passages[0].Content, "var x=1", "脚本内容应被剔除")
}

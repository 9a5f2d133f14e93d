package retrieval

import (
	"context"
	"errors"
)

// ErrNoContent 所有候选 URL 的抓取都失败了
// 调用方必须收到显式信号，不能把空内容当成成功继续合成
var ErrNoContent = errors.New("no retrievable content available")

// Passage 一段检索到的文本
// Source 为可选的来源标识（URL 或文档 ID），产出后不再修改。
type Passage struct {
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
	Score   float32 `json:"score,omitempty"`
}

// VectorSearcher 向量相似度检索接口
// 后端存储不可达时返回错误，对当前请求是致命的。
type VectorSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]*Passage, error)
}

// URLFinder 联网搜索接口
// 返回按相关度排序、且存活探测通过的候选 URL。
type URLFinder interface {
	FindLiveURLs(ctx context.Context, query string) ([]string, error)
}

// PageFetcher 网页抓取接口
// 单个 URL 失败不影响整体，全部失败时返回 ErrNoContent。
type PageFetcher interface {
	FetchAll(ctx context.Context, urls []string) ([]*Passage, error)
}

package vector

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/nutriassist/backend/internal/domain/retrieval"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/nutriassist/backend/internal/infrastructure/embedding"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/qdrant/go-client/qdrant"
)

// 确保 Searcher 实现了 retrieval.VectorSearcher 接口
var _ retrieval.VectorSearcher = (*Searcher)(nil)

// Searcher 基于 Qdrant 的向量相似度检索
// 知识库集合由离线摄取流程预先构建，本服务只读。
// 向量库不可达对当前请求是致命错误，不做本地降级。
type Searcher struct {
	client          *qdrant.Client
	embeddingClient *embedding.Client
	collection      string
	logger          *slog.Logger
}

// NewSearcher 创建向量检索器
func NewSearcher(cfg *config.QdrantConfig, embeddingClient *embedding.Client) (*Searcher, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Host,
		Port: cfg.Port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	return &Searcher{
		client:          client,
		embeddingClient: embeddingClient,
		collection:      cfg.Collection,
		logger:          applog.NewModuleLogger("vector", "searcher"),
	}, nil
}

// Search 对查询做向量化后执行 Top-K 相似度检索，按相似度降序返回
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]*retrieval.Passage, error) {
	if limit <= 0 {
		limit = 10
	}

	s.logger.Info("Starting vector search",
		"collection", s.collection,
		"limit", limit,
	)

	queryVector, err := s.embeddingClient.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Error("Failed to embed query", "error", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	searchLimit := uint64(limit)
	hits, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          &searchLimit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		s.logger.Error("Failed to query qdrant", "error", err)
		return nil, fmt.Errorf("failed to query qdrant: %w", err)
	}

	passages := make([]*retrieval.Passage, 0, len(hits))
	for _, hit := range hits {
		passage := hitToPassage(hit)
		if passage != nil {
			passages = append(passages, passage)
		}
	}

	s.logger.Info("Vector search completed",
		"hits", len(hits),
		"passages", len(passages),
	)

	return passages, nil
}

// Close 关闭 Qdrant 连接
func (s *Searcher) Close() error {
	return s.client.Close()
}

// hitToPassage 将 Qdrant 命中转换为检索段落
func hitToPassage(hit *qdrant.ScoredPoint) *retrieval.Passage {
	payload := hit.GetPayload()
	if payload == nil {
		return nil
	}

	passage := &retrieval.Passage{
		Score: hit.GetScore(),
	}

	if val, ok := payload["content"]; ok {
		passage.Content = extractStringValue(val)
	}
	if val, ok := payload["source"]; ok {
		passage.Source = extractStringValue(val)
	}

	if passage.Content == "" {
		return nil
	}
	return passage
}

// extractStringValue 从 qdrant.Value 提取字符串值
func extractStringValue(val *qdrant.Value) string {
	if val == nil {
		return ""
	}
	return val.GetStringValue()
}

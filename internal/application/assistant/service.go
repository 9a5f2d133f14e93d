package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"log/slog"

	"github.com/nutriassist/backend/internal/domain/chat"
	"github.com/nutriassist/backend/internal/domain/patient"
	"github.com/nutriassist/backend/internal/domain/retrieval"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/infrastructure/llm"
)

// ErrEmptyQuery 查询为空，属于客户端输入错误
var ErrEmptyQuery = errors.New("no question provided")

// 固定应答文案
const (
	greetingMessage    = "Hello! How can I assist you today?"
	farewellMessage    = "You're welcome! Have a great day!"
	outOfDomainMessage = "Please ask me questions from nutritional content, diet plan, medical diagnosis."
	noResultsMessage   = "Sorry, I couldn't find relevant information for your medical query."

	// 向量检索问答中模型表示无法作答的固定标记
	dontKnowToken = "I don't know."
)

// Answer 一次查询的处理结果
type Answer struct {
	Message        string       `json:"message"`
	Sources        []string     `json:"sources,omitempty"`
	History        []chat.Entry `json:"history,omitempty"`
	CachedResponse bool         `json:"cachedResponse"`
	WebScraping    bool         `json:"webscraping"`
	RAGRetrieval   bool         `json:"ragRetrieval,omitempty"`
}

// Service 问答编排服务
// 每个请求走单一同步流程：归一化 → 短路检查 → 领域分类 → 缓存查询 →
// 路由选择 → 检索 → 分块摘要/合成 → 写缓存 → 写历史。
// 缓存和历史是跨请求共享的状态对象，由调用方注入，便于测试隔离。
type Service struct {
	router     *Router
	classifier *Classifier
	summarizer *Summarizer
	llmClient  CompletionClient

	vectorSearcher retrieval.VectorSearcher
	urlFinder      retrieval.URLFinder
	fetcher        retrieval.PageFetcher

	patientRepo patient.Repository
	cache       *chat.ResponseCache
	history     *chat.HistoryLog
	runtime     *config.Runtime

	logger *slog.Logger
}

// NewService 创建问答编排服务
func NewService(
	router *Router,
	classifier *Classifier,
	summarizer *Summarizer,
	llmClient CompletionClient,
	vectorSearcher retrieval.VectorSearcher,
	urlFinder retrieval.URLFinder,
	fetcher retrieval.PageFetcher,
	patientRepo patient.Repository,
	cache *chat.ResponseCache,
	history *chat.HistoryLog,
	runtime *config.Runtime,
) *Service {
	return &Service{
		router:         router,
		classifier:     classifier,
		summarizer:     summarizer,
		llmClient:      llmClient,
		vectorSearcher: vectorSearcher,
		urlFinder:      urlFinder,
		fetcher:        fetcher,
		patientRepo:    patientRepo,
		cache:          cache,
		history:        history,
		runtime:        runtime,
		logger:         applog.NewModuleLogger("assistant", "service"),
	}
}

// History 返回完整对话历史
func (s *Service) History() []chat.Entry {
	return s.history.All()
}

// Answer 处理一次用户查询
func (s *Service) Answer(ctx context.Context, query string) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	normalized := Normalize(query)

	// 问候/告别短路：不分类、不检索、不写缓存
	if route, ok := s.router.Shortcut(normalized); ok {
		message := greetingMessage
		if route == chat.RouteFarewell {
			message = farewellMessage
		}
		s.logger.Info("Shortcut route matched", "route", route.String())
		s.history.AppendTurn(query, message)
		return &Answer{Message: message}, nil
	}

	// 领域门禁：分类失败一律按领域外处理
	inDomain, err := s.classifier.IsInDomain(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !inDomain {
		s.logger.Info("Query rejected as out of domain")
		s.history.AppendTurn(query, outOfDomainMessage)
		return &Answer{Message: outOfDomainMessage}, nil
	}

	// 缓存查询先于任何检索/合成工作
	if cached, ok := s.cache.Get(query); ok {
		s.logger.Info("Cache hit", "query_length", len(query))
		s.history.AppendTurn(query, cached)
		return &Answer{
			Message:        cached,
			History:        s.history.All(),
			CachedResponse: true,
		}, nil
	}

	route := s.router.Resolve(normalized)
	pipeline := s.runtime.Pipeline()

	s.logger.Info("Route resolved", "route", route.String())

	switch route {
	case chat.RouteMedicalLookup:
		return s.answerWithWebRetrieval(ctx, query, &MedicalProfile, pipeline, false)
	case chat.RouteDietPlan:
		return s.answerWithWebRetrieval(ctx, query, &DietPlanProfile, pipeline, true)
	default:
		return s.answerWithVectorSearch(ctx, query, pipeline)
	}
}

// answerWithWebRetrieval 联网检索 + 分块摘要路径
// includeSources 控制是否在应答中附带来源 URL
func (s *Service) answerWithWebRetrieval(ctx context.Context, query string, profile *PersonaProfile, pipeline config.PipelineConfig, includeSources bool) (*Answer, error) {
	urls, err := s.urlFinder.FindLiveURLs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}
	if len(urls) == 0 {
		s.history.AppendTurn(query, noResultsMessage)
		return &Answer{Message: noResultsMessage}, nil
	}

	maxFetch := pipeline.MaxFetchURLs
	if maxFetch <= 0 {
		maxFetch = 3
	}
	if len(urls) > maxFetch {
		urls = urls[:maxFetch]
	}

	passages, err := s.fetcher.FetchAll(ctx, urls)
	if errors.Is(err, retrieval.ErrNoContent) {
		// 所有抓取都失败：显式信号，按无结果处理而不是用空内容合成
		s.logger.Warn("All page fetches failed", "urls", len(urls))
		s.history.AppendTurn(query, noResultsMessage)
		return &Answer{Message: noResultsMessage}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("page fetch failed: %w", err)
	}

	patientJSON, err := s.patientContext()
	if err != nil {
		return nil, err
	}

	content := joinPassages(passages)
	answer, err := s.summarizer.Summarize(ctx, profile, patientJSON, content, query, pipeline.ChunkSize)
	if err != nil {
		return nil, err
	}

	s.cache.Put(query, answer)
	s.history.AppendTurn(query, answer)

	result := &Answer{
		Message:     answer,
		History:     s.history.All(),
		WebScraping: true,
	}
	if includeSources {
		result.Sources = urls
	}
	return result, nil
}

// answerWithVectorSearch 向量检索问答路径
// 知识库无结果或模型无法作答时降级为一次直接补全
func (s *Service) answerWithVectorSearch(ctx context.Context, query string, pipeline config.PipelineConfig) (*Answer, error) {
	passages, err := s.vectorSearcher.Search(ctx, query, pipeline.TopK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	if len(passages) == 0 {
		return s.answerDirect(ctx, query)
	}

	contents := make([]string, len(passages))
	for i, p := range passages {
		contents[i] = p.Content
	}

	raw, err := s.llmClient.Complete(ctx, []llm.Message{
		{Role: "user", Content: buildStuffPrompt(contents, query)},
	})
	if err != nil {
		return nil, fmt.Errorf("retrieval answer synthesis failed: %w", err)
	}

	answer := strings.TrimSpace(raw)
	if answer == dontKnowToken {
		return s.answerDirect(ctx, query)
	}

	s.cache.Put(query, answer)
	s.history.AppendTurn(query, answer)

	return &Answer{
		Message:      answer,
		Sources:      contents,
		History:      s.history.All(),
		RAGRetrieval: true,
	}, nil
}

// answerDirect 不依赖检索的直接补全应答
func (s *Service) answerDirect(ctx context.Context, query string) (*Answer, error) {
	raw, err := s.llmClient.Complete(ctx, []llm.Message{
		{Role: "user", Content: buildPrescriptionPrompt(query)},
	})
	if err != nil {
		return nil, fmt.Errorf("direct answer synthesis failed: %w", err)
	}

	// 星号列表展开为换行，便于前端纯文本展示
	answer := strings.ReplaceAll(strings.TrimSpace(raw), "*", "\n")

	s.cache.Put(query, answer)
	s.history.AppendTurn(query, answer)

	return &Answer{
		Message:      answer,
		History:      s.history.All(),
		RAGRetrieval: true,
	}, nil
}

// patientContext 取当前就诊患者档案的 JSON 文本
// 未配置 MRN 或档案不存在时按空档案处理，数据库故障向上传播
func (s *Service) patientContext() (string, error) {
	mrn := s.runtime.Pipeline().ActiveMRN
	if mrn == "" {
		return "{}", nil
	}

	record, err := s.patientRepo.GetByMRN(mrn)
	if errors.Is(err, patient.ErrNotFound) {
		s.logger.Warn("Active patient record not found", "mrn", mrn)
		return "{}", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load patient record: %w", err)
	}
	return record.ToPromptJSON(), nil
}

// joinPassages 按序拼接检索段落
func joinPassages(passages []*retrieval.Passage) string {
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = p.Content
	}
	return strings.Join(parts, "\n")
}

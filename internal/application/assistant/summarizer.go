package assistant

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/infrastructure/llm"
	"github.com/nutriassist/backend/internal/infrastructure/token"
)

// Summarizer 分块摘要流水线
// 两阶段归约：先对每个分块做一次有界摘要，再把按序拼接的中间摘要
// 连同角色设定交给最终合成调用。医疗查询与饮食计划共用此流水线，
// 差异全部收敛在 PersonaProfile 里。
// 任一补全调用失败对当前请求是致命的，不做部分降级。
type Summarizer struct {
	llmClient CompletionClient
	logger    *slog.Logger
}

// NewSummarizer 创建分块摘要流水线
func NewSummarizer(llmClient CompletionClient) *Summarizer {
	return &Summarizer{
		llmClient: llmClient,
		logger:    applog.NewModuleLogger("assistant", "summarizer"),
	}
}

// Summarize 执行两阶段归约，返回最终应答文本
// 分块处理顺序与输入顺序一致，中间摘要按序以空格拼接：
// 后面的分块可能通过共享的角色设定隐式引用前文，顺序不可打乱
func (s *Summarizer) Summarize(ctx context.Context, profile *PersonaProfile, patientJSON, content, query string, chunkSize int) (string, error) {
	chunks := SplitContent(content, chunkSize)
	if len(chunks) == 0 {
		return "", fmt.Errorf("no content to summarize")
	}

	s.logger.Info("Starting chunk summarization",
		"profile", profile.Name,
		"content_length", len(content),
		"chunks", len(chunks),
	)

	persona := profile.persona(patientJSON)

	// 阶段一：逐块摘要，严格按输入顺序
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		messages := []llm.Message{
			{Role: "user", Content: persona},
			{Role: "user", Content: buildChunkPrompt(chunk, i+1, query)},
		}
		s.logPromptBudget(profile.Name, i+1, messages)

		summary, err := s.llmClient.Complete(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("chunk %d summarization failed: %w", i+1, err)
		}
		summaries = append(summaries, strings.TrimSpace(summary))
	}

	combined := strings.Join(summaries, " ")

	// 阶段二：最终合成
	finalMessages := []llm.Message{
		{Role: "user", Content: persona},
		{Role: "user", Content: buildFinalPrompt(profile, combined)},
	}
	s.logPromptBudget(profile.Name, 0, finalMessages)

	answer, err := s.llmClient.Complete(ctx, finalMessages)
	if err != nil {
		return "", fmt.Errorf("final synthesis failed: %w", err)
	}

	s.logger.Info("Chunk summarization completed",
		"profile", profile.Name,
		"chunks", len(chunks),
		"answer_length", len(answer),
	)

	return strings.TrimSpace(answer), nil
}

// logPromptBudget 记录 Prompt 的 Token 预算
// chunkIndex 为 0 表示最终合成调用；估算器加载失败时静默跳过
func (s *Summarizer) logPromptBudget(profileName string, chunkIndex int, messages []llm.Message) {
	estimator, err := token.GetEstimator()
	if err != nil {
		return
	}

	texts := make([]string, len(messages))
	for i, m := range messages {
		texts[i] = m.Content
	}

	s.logger.Debug("Prompt token budget",
		"profile", profileName,
		"chunk", chunkIndex,
		"tokens", estimator.CountTokensBatch(texts),
	)
}

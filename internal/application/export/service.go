package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"log/slog"

	"github.com/google/uuid"
	"github.com/nutriassist/backend/internal/domain/chat"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/infrastructure/llm"
	"github.com/nutriassist/backend/internal/infrastructure/pdf"
	"github.com/nutriassist/backend/internal/infrastructure/storage"
	"github.com/nutriassist/backend/internal/infrastructure/websocket"
)

// ErrEmptyHistory 对话历史为空，无内容可导出
var ErrEmptyHistory = errors.New("chat history is empty")

const pdfTitle = "Chat History Summary"

// CompletionClient 摘要用到的补全客户端接口
type CompletionClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Artifact 一次导出的结果
type Artifact struct {
	ID       string `json:"id"`
	Filename string `json:"pdf_filename"`
	Summary  string `json:"message"`
}

// Service 对话历史导出服务
// 摘要 → PDF 渲染 → 产物登记 → WebSocket 通知，整条链同步执行
type Service struct {
	llmClient CompletionClient
	history   *chat.HistoryLog
	writer    *pdf.Writer
	artifacts storage.ArtifactRepository
	hub       *websocket.Hub
	logger    *slog.Logger
}

// NewService 创建导出服务
func NewService(
	llmClient CompletionClient,
	history *chat.HistoryLog,
	writer *pdf.Writer,
	artifacts storage.ArtifactRepository,
	hub *websocket.Hub,
) *Service {
	return &Service{
		llmClient: llmClient,
		history:   history,
		writer:    writer,
		artifacts: artifacts,
		hub:       hub,
		logger:    applog.NewModuleLogger("export", "service"),
	}
}

// SummarizeHistory 摘要当前对话历史并生成 PDF 产物
func (s *Service) SummarizeHistory(ctx context.Context) (*Artifact, error) {
	entries := s.history.All()
	if len(entries) == 0 {
		return nil, ErrEmptyHistory
	}

	summary, err := s.summarize(ctx, entries)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	filename := fmt.Sprintf("chat-summary-%s.pdf", id)

	if _, err := s.writer.Write(filename, pdfTitle, summary); err != nil {
		return nil, err
	}

	if err := s.artifacts.Save(&storage.ExportArtifact{ID: id, Filename: filename}); err != nil {
		return nil, err
	}

	// 通知失败只降级为日志，不影响导出结果
	if err := s.hub.Broadcast(map[string]string{
		"type":     "export_completed",
		"id":       id,
		"filename": filename,
	}); err != nil {
		s.logger.Warn("Failed to broadcast export notification", "error", err)
	}

	s.logger.Info("Chat history exported", "artifact_id", id, "entries", len(entries))
	return &Artifact{ID: id, Filename: filename, Summary: summary}, nil
}

// ArtifactPath 按 ID 返回产物文件路径
func (s *Service) ArtifactPath(id string) (string, error) {
	artifact, err := s.artifacts.GetByID(id)
	if err != nil {
		return "", err
	}
	return s.writer.Path(artifact.Filename), nil
}

// summarize 用一次补全调用汇总全部历史条目
func (s *Service) summarize(ctx context.Context, entries []chat.Entry) (string, error) {
	var list strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&list, "%d) %s\n", i, entry.Content)
	}

	prompt := "Imagine you're a top-tier summarizer. I'll give you a list of final responses from a chat conversation, " +
		"and I'd like you to summarize them thoroughly and concisely. Preferably, use bullet points. " +
		"Some responses may include warnings that begin with the word 'please,' and those can be ignored. " +
		"Only summarize the responses with valid information. Provide the final summary in double quotes " +
		"without any introduction or conclusion statements. Ensure the summary is clear and detailed for the reader, " +
		"not overly brief or condensed. Here are the responses: " + list.String()

	raw, err := s.llmClient.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return "", fmt.Errorf("history summarization failed: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

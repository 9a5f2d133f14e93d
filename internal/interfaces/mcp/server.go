package mcp

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nutriassist/backend/internal/application/assistant"
	"github.com/nutriassist/backend/internal/application/export"
)

// MCPServer MCP 服务器
type MCPServer struct {
	server           *mcp.Server
	handler          http.Handler
	assistantService *assistant.Service
	exportService    *export.Service
}

// NewServer 创建 MCP 服务器
func NewServer(
	assistantService *assistant.Service,
	exportService *export.Service,
) *MCPServer {
	// 创建 MCP 服务器实例
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutriassist-backend",
			Version: "0.1.0",
		},
		nil, // 使用默认能力
	)

	mcpServer := &MCPServer{
		server:           server,
		assistantService: assistantService,
		exportService:    exportService,
	}

	// 注册工具：search_medical_knowledge
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_medical_knowledge",
		Description: "Answer a nutrition or medical question through the assistant pipeline (routing, retrieval, summarization). Parameters: query (string, required) - the user question. Returns: answer message, optional sources, and whether the answer came from cache.",
	}, mcpServer.searchMedicalKnowledgeTool)

	// 注册工具：get_chat_history
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_chat_history",
		Description: "Return the full conversation history of the current process, in order. No parameters required.",
	}, mcpServer.getChatHistoryTool)

	// 注册工具：summarize_chat_history
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_chat_history",
		Description: "Summarize the current conversation history and export it as a PDF artifact. No parameters required. Returns: summary text, artifact id, and PDF filename.",
	}, mcpServer.summarizeChatHistoryTool)

	// 创建 SSE Handler
	handler := mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			// 每个请求返回同一个服务器实例
			return server
		},
		nil, // SSEOptions，使用默认值
	)

	mcpServer.handler = handler
	return mcpServer
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

// Stop 停止服务器
// MCP 通过 HTTP Handler 提供服务，随 HTTP 服务器一起关闭
func (s *MCPServer) Stop() error {
	return nil
}

// SearchInput 知识问答工具输入
type SearchInput struct {
	Query string `json:"query" jsonschema:"用户问题"`
}

// SearchOutput 知识问答工具输出
type SearchOutput struct {
	Message        string   `json:"message" jsonschema:"应答文本"`
	Sources        []string `json:"sources,omitempty" jsonschema:"来源列表"`
	CachedResponse bool     `json:"cached_response" jsonschema:"是否命中缓存"`
}

// searchMedicalKnowledgeTool 知识问答工具
func (s *MCPServer) searchMedicalKnowledgeTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	answer, err := s.assistantService.Answer(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{
		Message:        answer.Message,
		Sources:        answer.Sources,
		CachedResponse: answer.CachedResponse,
	}, nil
}

// ChatHistoryInput 对话历史工具输入（空输入）
type ChatHistoryInput struct{}

// HistoryEntry 对话历史条目
type HistoryEntry struct {
	Role    string `json:"role" jsonschema:"角色：user/assistant"`
	Content string `json:"content" jsonschema:"内容"`
}

// ChatHistoryOutput 对话历史工具输出
type ChatHistoryOutput struct {
	History []HistoryEntry `json:"history" jsonschema:"按序排列的对话历史"`
	Total   int            `json:"total" jsonschema:"条目总数"`
}

// getChatHistoryTool 对话历史工具
func (s *MCPServer) getChatHistoryTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ChatHistoryInput,
) (*mcp.CallToolResult, ChatHistoryOutput, error) {
	entries := s.assistantService.History()
	history := make([]HistoryEntry, len(entries))
	for i, entry := range entries {
		history[i] = HistoryEntry{Role: entry.Role, Content: entry.Content}
	}
	return nil, ChatHistoryOutput{History: history, Total: len(history)}, nil
}

// SummarizeInput 历史摘要工具输入（空输入）
type SummarizeInput struct{}

// SummarizeOutput 历史摘要工具输出
type SummarizeOutput struct {
	Summary  string `json:"summary" jsonschema:"摘要文本"`
	ID       string `json:"id" jsonschema:"产物 ID"`
	Filename string `json:"filename" jsonschema:"PDF 文件名"`
}

// summarizeChatHistoryTool 历史摘要导出工具
func (s *MCPServer) summarizeChatHistoryTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	artifact, err := s.exportService.SummarizeHistory(ctx)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}
	return nil, SummarizeOutput{
		Summary:  artifact.Summary,
		ID:       artifact.ID,
		Filename: artifact.Filename,
	}, nil
}

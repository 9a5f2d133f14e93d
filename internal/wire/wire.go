//go:build wireinject
// +build wireinject

package wire

import (
	appAssistant "github.com/nutriassist/backend/internal/application/assistant"
	appExport "github.com/nutriassist/backend/internal/application/export"
	"github.com/nutriassist/backend/internal/application"
	"github.com/nutriassist/backend/internal/domain/chat"
	"github.com/nutriassist/backend/internal/domain/retrieval"
	"github.com/nutriassist/backend/internal/infrastructure"
	"github.com/nutriassist/backend/internal/infrastructure/llm"
	"github.com/nutriassist/backend/internal/infrastructure/vector"
	"github.com/nutriassist/backend/internal/infrastructure/webcrawl"
	"github.com/nutriassist/backend/internal/infrastructure/websearch"
	"github.com/nutriassist/backend/internal/interfaces"
	"github.com/google/wire"
)

// InitializeAll 初始化所有服务（HTTP + MCP）
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		chat.ProviderSet,           // 领域层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：应用层接口 -> 基础设施实现
		wire.Bind(
			new(appAssistant.CompletionClient),
			new(*llm.Client),
		),
		wire.Bind(
			new(appExport.CompletionClient),
			new(*llm.Client),
		),
		wire.Bind(
			new(retrieval.VectorSearcher),
			new(*vector.Searcher),
		),
		wire.Bind(
			new(retrieval.URLFinder),
			new(*websearch.Client),
		),
		wire.Bind(
			new(retrieval.PageFetcher),
			new(*webcrawl.Crawler),
		),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil
}

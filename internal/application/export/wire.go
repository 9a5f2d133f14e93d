package export

import "github.com/google/wire"

// ProviderSet 导出应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	// 注意：CompletionClient 绑定在顶层 wire.go 中处理
)

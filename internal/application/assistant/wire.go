package assistant

import "github.com/google/wire"

// ProviderSet 问答应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewRouter,
	NewClassifier,
	NewSummarizer,
	NewService,
	// 注意：CompletionClient 与检索接口绑定在顶层 wire.go 中处理
)

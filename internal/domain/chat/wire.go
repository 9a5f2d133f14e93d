package chat

import "github.com/google/wire"

// ProviderSet 对话领域 ProviderSet
var ProviderSet = wire.NewSet(
	NewResponseCache,
	NewHistoryLog,
)

package assistant

import (
	"context"

	"github.com/nutriassist/backend/internal/infrastructure/llm"
)

// CompletionClient 补全调用接口
// 返回值是上游模型的原始文本，必须显式解析后才能参与控制流
type CompletionClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

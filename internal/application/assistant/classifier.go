package assistant

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/infrastructure/llm"
)

// 领域分类的期望肯定应答，严格全等匹配
const affirmativeToken = "True"

// Classifier 领域分类器
// 通过一次补全调用判断查询是否属于医疗/营养领域。
// 上游返回的是不可信文本：只有去除首尾空白后与期望 token 严格相等
// 才算领域内，其余一律按领域外处理（fail-closed），避免把未经
// 约束的模型输出当成分类结果。
type Classifier struct {
	llmClient CompletionClient
	logger    *slog.Logger
}

// NewClassifier 创建领域分类器
func NewClassifier(llmClient CompletionClient) *Classifier {
	return &Classifier{
		llmClient: llmClient,
		logger:    applog.NewModuleLogger("assistant", "classifier"),
	}
}

// IsInDomain 判断查询是否属于医疗/营养领域
// 传输层错误向上传播；应答不可解析时返回 false 而非错误
func (c *Classifier) IsInDomain(ctx context.Context, query string) (bool, error) {
	raw, err := c.llmClient.Complete(ctx, []llm.Message{
		{Role: "user", Content: buildGatePrompt(query)},
	})
	if err != nil {
		return false, fmt.Errorf("domain classification call failed: %w", err)
	}

	answer := strings.TrimSpace(raw)
	if answer == affirmativeToken {
		return true, nil
	}

	if answer != "False" {
		// 模型没有按要求回答，按领域外处理
		c.logger.Warn("Classifier returned unparseable response, failing closed",
			"response_preview", preview(answer, 80),
		)
	}
	return false, nil
}

// preview 截断文本用于日志
func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

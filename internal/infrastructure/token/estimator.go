package token

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// 在包初始化时设置离线加载器
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Estimator 使用 tiktoken 估算 Prompt 的 Token 数量
// 用于流水线的 Token 预算日志，不参与分块决策（分块按字符数进行）。
type Estimator struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex
}

// 单例实例
var (
	instance *Estimator
	once     sync.Once
	loadErr  error
)

// GetEstimator 获取 Estimator 单例
// 使用单例模式避免重复加载编码文件
func GetEstimator() (*Estimator, error) {
	once.Do(func() {
		// cl100k_base 编码与主流 Chat 模型兼容
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			loadErr = err
			return
		}
		instance = &Estimator{encoding: enc}
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

// CountTokens 计算文本的 Token 数量
func (e *Estimator) CountTokens(text string) int {
	if text == "" {
		return 0
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	tokens := e.encoding.Encode(text, nil, nil)
	return len(tokens)
}

// CountTokensBatch 批量计算多个文本的 Token 总量
func (e *Estimator) CountTokensBatch(texts []string) int {
	total := 0
	for _, text := range texts {
		total += e.CountTokens(text)
	}
	return total
}

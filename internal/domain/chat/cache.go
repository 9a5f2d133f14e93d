package chat

import "sync"

// ResponseCache 应答缓存
// 以原始查询文本为键，进程生命周期内不过期、不淘汰。
// 语义相同但文本不同的查询不会命中同一条缓存，这是刻意的简化。
// 并发写入同一键时后写覆盖先写（last-write-wins）。
type ResponseCache struct {
	mu        sync.RWMutex
	responses map[string]string
}

// NewResponseCache 创建应答缓存
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		responses: make(map[string]string),
	}
}

// Get 查询缓存
func (c *ResponseCache) Get(query string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.responses[query]
	return answer, ok
}

// Put 写入缓存
func (c *ResponseCache) Put(query, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[query] = answer
}

// Len 返回缓存条数
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.responses)
}

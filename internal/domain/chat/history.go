package chat

import "sync"

// HistoryLog 对话历史记录
// 进程生命周期内只追加、不修改、不清理，导出时整体消费。
// 并发请求共享同一实例，内部用互斥锁保证追加顺序。
type HistoryLog struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewHistoryLog 创建对话历史记录
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

// Append 追加一条记录
func (h *HistoryLog) Append(role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{Role: role, Content: content})
}

// AppendTurn 追加一轮对话（用户 + 助手各一条）
func (h *HistoryLog) AppendTurn(userContent, assistantContent string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries,
		Entry{Role: RoleUser, Content: userContent},
		Entry{Role: RoleAssistant, Content: assistantContent},
	)
}

// All 返回全部记录的副本，保持追加顺序
func (h *HistoryLog) All() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entries := make([]Entry, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Len 返回记录条数
func (h *HistoryLog) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

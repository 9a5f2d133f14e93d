package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLog_AppendTurn(t *testing.T) {
	history := NewHistoryLog()

	history.AppendTurn("hello", "Hello! How can I assist you today?")

	entries := history.All()
	require.Len(t, entries, 2)
	assert.Equal(t, RoleUser, entries[0].Role)
	assert.Equal(t, "hello", entries[0].Content)
	assert.Equal(t, RoleAssistant, entries[1].Role)
	assert.Equal(t, "Hello! How can I assist you today?", entries[1].Content)
}

func TestHistoryLog_Order(t *testing.T) {
	history := NewHistoryLog()

	history.AppendTurn("q1", "a1")
	history.AppendTurn("q2", "a2")

	entries := history.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "q1", entries[0].Content)
	assert.Equal(t, "a1", entries[1].Content)
	assert.Equal(t, "q2", entries[2].Content)
	assert.Equal(t, "a2", entries[3].Content)
}

func TestHistoryLog_AllReturnsCopy(t *testing.T) {
	history := NewHistoryLog()
	history.AppendTurn("q", "a")

	entries := history.All()
	entries[0].Content = "mutated"

	assert.Equal(t, "q", history.All()[0].Content, "外部修改不应影响内部状态")
}

func TestHistoryLog_ConcurrentAppend(t *testing.T) {
	history := NewHistoryLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			history.AppendTurn("question", "answer")
		}()
	}
	wg.Wait()

	entries := history.All()
	assert.Len(t, entries, 100)

	// 同一轮的两条记录保持相邻
	for i := 0; i < len(entries); i += 2 {
		assert.Equal(t, RoleUser, entries[i].Role)
		assert.Equal(t, RoleAssistant, entries[i+1].Role)
	}
}

package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToAllClients(t *testing.T) {
	hub := NewHub()
	hub.Start()

	first := &Connection{Send: make(chan []byte, 8)}
	second := &Connection{Send: make(chan []byte, 8)}
	hub.Register(first)
	hub.Register(second)

	require.NoError(t, hub.Broadcast(map[string]string{"type": "export_completed", "id": "x"}))

	for _, conn := range []*Connection{first, second} {
		select {
		case data := <-conn.Send:
			assert.Contains(t, string(data), "export_completed")
		case <-time.After(time.Second):
			t.Fatal("连接未收到广播")
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	hub.Start()

	conn := &Connection{Send: make(chan []byte, 8)}
	hub.Register(conn)

	// 等待注册被处理
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Unregister(conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	_, open := <-conn.Send
	assert.False(t, open, "注销后发送通道应关闭")
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	hub.Start()

	// 无订阅者时广播不阻塞、不报错
	assert.NoError(t, hub.Broadcast(map[string]string{"type": "noop"}))
}

func TestHub_BroadcastMarshalError(t *testing.T) {
	hub := NewHub()
	hub.Start()

	assert.Error(t, hub.Broadcast(make(chan int)), "不可序列化的负载应返回错误")
}

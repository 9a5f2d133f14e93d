package websocket

import (
	"encoding/json"
	"sync"
)

// Hub WebSocket 连接管理中心
// 前端通过 /ws 订阅服务端事件（目前只有导出完成通知），
// 事件对所有连接广播。
type Hub struct {
	clients map[*Connection]bool
	// 注册连接
	register chan *Connection
	// 注销连接
	unregister chan *Connection
	// 广播消息
	broadcast chan []byte
	mu        sync.RWMutex
}

// Connection WebSocket 连接
type Connection struct {
	Send chan []byte
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行）
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				close(conn.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.clients {
				select {
				case conn.Send <- data:
				default:
					close(conn.Send)
					delete(h.clients, conn)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Register 注册连接
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Broadcast 向所有连接广播消息
func (h *Hub) Broadcast(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	h.broadcast <- jsonData
	return nil
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

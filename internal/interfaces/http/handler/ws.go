package handler

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/infrastructure/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WSHandler WebSocket 接入处理器
// 连接只用于服务端向前端推送事件（导出完成通知），客户端消息被丢弃
type WSHandler struct {
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
	logger   *slog.Logger
}

// NewWSHandler 创建 WebSocket 接入处理器
func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 本地前端，允许所有来源
			},
		},
		logger: applog.NewModuleLogger("http", "ws_handler"),
	}
}

// Serve 升级连接并托管到 Hub
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := &websocket.Connection{Send: make(chan []byte, 256)}
	h.hub.Register(client)

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// readPump 消费客户端消息，连接断开时注销
func (h *WSHandler) readPump(conn *gorilla.Conn, client *websocket.Connection) {
	defer func() {
		h.hub.Unregister(client)
		_ = conn.Close()
	}()

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseNormalClosure) {
				h.logger.Warn("Unexpected connection close", "error", err)
			}
			return
		}
	}
}

// writePump 将 Hub 推送的消息写入连接，定期发送 ping 保活
func (h *WSHandler) writePump(conn *gorilla.Conn, client *websocket.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(gorilla.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(gorilla.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(gorilla.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

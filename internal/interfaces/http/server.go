package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nutriassist/backend/internal/infrastructure/config"
	"github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/interfaces/http/handler"
	"github.com/nutriassist/backend/internal/interfaces/mcp"
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.Config,
	assistantHandler *handler.AssistantHandler,
	exportHandler *handler.ExportHandler,
	patientHandler *handler.PatientHandler,
	wsHandler *handler.WSHandler,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	router := gin.Default()

	logger := log.NewModuleLogger("http", "server")

	// 注册路由
	router.GET("/search", assistantHandler.Search)
	router.GET("/chat-history", assistantHandler.ChatHistory)
	router.POST("/summarize-chat", exportHandler.SummarizeChat)
	router.GET("/get-pdf/:id", exportHandler.GetPDF)

	// 患者档案管理路由
	patients := router.Group("/patients")
	{
		patients.GET("", patientHandler.List)
		patients.POST("", patientHandler.Save)
		patients.GET("/:mrn", patientHandler.Get)
	}

	// 导出完成事件推送
	router.GET("/ws", wsHandler.Serve)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: cfg.Server.HTTPPort,
		logger:   logger,
	}
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

package wire

import (
	"database/sql"

	"log/slog"

	"github.com/nutriassist/backend/internal/infrastructure/config"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/infrastructure/vector"
	"github.com/nutriassist/backend/internal/infrastructure/websocket"
	"github.com/nutriassist/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer    *interfaces.HTTPServer
	MCPServer     *interfaces.MCPServer
	wsHub         *websocket.Hub
	configWatcher *config.Watcher
	searcher      *vector.Searcher
	db            *sql.DB
	logger        *slog.Logger
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	wsHub *websocket.Hub,
	configWatcher *config.Watcher,
	searcher *vector.Searcher,
	db *sql.DB,
) *App {
	return &App{
		HTTPServer:    httpServer,
		MCPServer:     mcpServer,
		wsHub:         wsHub,
		configWatcher: configWatcher,
		searcher:      searcher,
		db:            db,
		logger:        applog.NewModuleLogger("app", "main"),
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting nutriassist backend application")

	// 启动配置热加载（未提供配置文件时 watcher 为 nil）
	if a.configWatcher != nil {
		if err := a.configWatcher.Start(); err != nil {
			a.logger.Error("Failed to start config watcher",
				"error", err,
			)
		} else {
			a.logger.Info("Config watcher started")
		}
	}

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("nutriassist backend application started successfully")

	// MCP 服务器通过 HTTP Handler 提供服务，不需要单独启动
	// 已在 HTTP 服务器中注册 /mcp/sse 端点

	return nil
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping nutriassist backend application")

	// 停止配置热加载
	if a.configWatcher != nil {
		a.configWatcher.Stop()
		a.logger.Info("Config watcher stopped")
	}

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}
	if err := a.MCPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop MCP server",
			"error", err,
		)
		return err
	}

	// 关闭向量库连接
	if a.searcher != nil {
		if err := a.searcher.Close(); err != nil {
			a.logger.Error("Failed to close vector store connection",
				"error", err,
			)
		}
	}

	// 关闭数据库连接
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database connection",
				"error", err,
			)
			return err
		}
	}

	a.logger.Info("nutriassist backend application stopped")
	return nil
}

package handler

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nutriassist/backend/internal/application/assistant"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/interfaces/http/response"
)

// AssistantHandler 问答处理器
type AssistantHandler struct {
	service *assistant.Service
	logger  *slog.Logger
}

// NewAssistantHandler 创建问答处理器
func NewAssistantHandler(service *assistant.Service) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		logger:  applog.NewModuleLogger("http", "assistant_handler"),
	}
}

// Search 处理一次用户查询
// 应答结构与前端约定：message/sources/history/cachedResponse/webscraping
func (h *AssistantHandler) Search(c *gin.Context) {
	query := c.Query("query")

	answer, err := h.service.Answer(c.Request.Context(), query)
	if errors.Is(err, assistant.ErrEmptyQuery) {
		response.Error(c, http.StatusBadRequest, 200001, "No question provided")
		return
	}
	if err != nil {
		h.logger.Error("Query processing failed", "error", err)
		response.Error(c, http.StatusInternalServerError, 200002, "Failed to process query")
		return
	}

	c.JSON(http.StatusOK, answer)
}

// ChatHistory 返回完整对话历史
func (h *AssistantHandler) ChatHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.service.History()})
}

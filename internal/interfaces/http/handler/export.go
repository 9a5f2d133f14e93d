package handler

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nutriassist/backend/internal/application/export"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/infrastructure/storage"
	"github.com/nutriassist/backend/internal/interfaces/http/response"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	service *export.Service
	logger  *slog.Logger
}

// NewExportHandler 创建导出处理器
func NewExportHandler(service *export.Service) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  applog.NewModuleLogger("http", "export_handler"),
	}
}

// SummarizeChat 摘要当前对话历史并生成 PDF
func (h *ExportHandler) SummarizeChat(c *gin.Context) {
	artifact, err := h.service.SummarizeHistory(c.Request.Context())
	if errors.Is(err, export.ErrEmptyHistory) {
		response.Error(c, http.StatusBadRequest, 200003, "Chat history is empty")
		return
	}
	if err != nil {
		h.logger.Error("Chat export failed", "error", err)
		response.Error(c, http.StatusInternalServerError, 200004, "Failed to export chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      artifact.Summary,
		"id":           artifact.ID,
		"pdf_filename": artifact.Filename,
	})
}

// GetPDF 下载导出的 PDF 产物
func (h *ExportHandler) GetPDF(c *gin.Context) {
	id := c.Param("id")

	path, err := h.service.ArtifactPath(id)
	if errors.Is(err, storage.ErrArtifactNotFound) {
		response.Error(c, http.StatusNotFound, 200005, "Export artifact not found")
		return
	}
	if err != nil {
		h.logger.Error("Artifact lookup failed", "error", err, "id", id)
		response.Error(c, http.StatusInternalServerError, 200006, "Failed to load export artifact")
		return
	}

	c.FileAttachment(path, "chat-summary.pdf")
}

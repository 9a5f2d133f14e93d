package handler

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nutriassist/backend/internal/domain/patient"
	applog "github.com/nutriassist/backend/internal/infrastructure/log"
	"github.com/nutriassist/backend/internal/interfaces/http/response"
)

// PatientHandler 患者档案处理器
type PatientHandler struct {
	repo   patient.Repository
	logger *slog.Logger
}

// NewPatientHandler 创建患者档案处理器
func NewPatientHandler(repo patient.Repository) *PatientHandler {
	return &PatientHandler{
		repo:   repo,
		logger: applog.NewModuleLogger("http", "patient_handler"),
	}
}

// List 列出全部患者档案
func (h *PatientHandler) List(c *gin.Context) {
	records, err := h.repo.List()
	if err != nil {
		h.logger.Error("Failed to list patient records", "error", err)
		response.Error(c, http.StatusInternalServerError, 200010, "Failed to list patients")
		return
	}
	response.Success(c, records)
}

// Get 按 MRN 查询患者档案
func (h *PatientHandler) Get(c *gin.Context) {
	mrn := c.Param("mrn")

	record, err := h.repo.GetByMRN(mrn)
	if errors.Is(err, patient.ErrNotFound) {
		response.Error(c, http.StatusNotFound, 200011, "Patient not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to load patient record", "error", err, "mrn", mrn)
		response.Error(c, http.StatusInternalServerError, 200012, "Failed to load patient")
		return
	}
	response.Success(c, record)
}

// Save 新建或更新患者档案
func (h *PatientHandler) Save(c *gin.Context) {
	var record patient.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		response.Error(c, http.StatusBadRequest, 200013, "Invalid patient payload")
		return
	}
	if record.MRN == "" {
		response.Error(c, http.StatusBadRequest, 200013, "MRN is required")
		return
	}

	if err := h.repo.Save(&record); err != nil {
		h.logger.Error("Failed to save patient record", "error", err, "mrn", record.MRN)
		response.Error(c, http.StatusInternalServerError, 200014, "Failed to save patient")
		return
	}
	response.Success(c, record)
}

package handler

import (
	"fmt"
	"net/http"

	"storehub/internal/dto"
	"storehub/internal/middleware"
	"storehub/internal/service"

	"github.com/gin-gonic/gin"
)

type StoragesHandler struct {
	svc     service.StorageService
	reports service.ReportService
}

func NewStoragesHandler(svc service.StorageService, reports service.ReportService) *StoragesHandler {
	return &StoragesHandler{svc: svc, reports: reports}
}

// Create POST /v1/storages
func (h *StoragesHandler) Create(c *gin.Context) {
	var req dto.CreateStorageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetStoreID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get GET /v1/storages/:id
func (h *StoragesHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), middleware.GetStoreID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List GET /v1/storages
func (h *StoragesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), middleware.GetStoreID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Decommission POST /v1/storages/:id/decommission
// Retires the storage's inventory atomically and reports per-step counts;
// running it twice answers 200 with all-zero counts.
func (h *StoragesHandler) Decommission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Decommission(c.Request.Context(), middleware.GetStoreID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/storages/:id
// Decommissions and soft-deletes in one transaction.
func (h *StoragesHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Delete(c.Request.Context(), middleware.GetStoreID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PromotePrimary POST /v1/storages/:id/promote-primary
func (h *StoragesHandler) PromotePrimary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.PromotePrimary(c.Request.Context(), middleware.GetStoreID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// StockReport GET /v1/storages/:id/report.pdf
func (h *StoragesHandler) StockReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=stock_%s.pdf", id))
	if err := h.reports.StockReportPDF(c.Request.Context(), middleware.GetStoreID(c), id, c.Writer); err != nil {
		writeServiceError(c, err)
		return
	}
}

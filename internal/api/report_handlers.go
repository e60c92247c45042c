package api

import (
	"net/http"

	"dating-admin/internal/metrics"
	"dating-admin/internal/validation"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListReports(c *gin.Context) {
	page, err := h.services.Reports.ListReports(c.Request.Context(), validatedQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) GetReport(c *gin.Context) {
	report, err := h.services.Reports.GetReport(c.Request.Context(), validatedID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) UpdateReportStatus(c *gin.Context) {
	req := validatedRequest[models.UpdateReportStatusRequest](c)

	report, err := h.services.Reports.UpdateReportStatus(c.Request.Context(), validatedID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("reports", string(req.Status))
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) DeleteReport(c *gin.Context) {
	if err := h.services.Reports.DeleteReport(c.Request.Context(), validatedID(c)); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("reports", "delete")
	deleted(c, "report deleted")
}

func (h *Handlers) ListSafetyReports(c *gin.Context) {
	page, err := h.services.Reports.ListSafetyReports(c.Request.Context(), validatedQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) GetSafetyReport(c *gin.Context) {
	report, err := h.services.Reports.GetSafetyReport(c.Request.Context(), validatedID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) UpdateSafetyReportStatus(c *gin.Context) {
	req := validatedRequest[models.UpdateReportStatusRequest](c)

	report, err := h.services.Reports.UpdateSafetyReportStatus(c.Request.Context(), validatedID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("safety_reports", string(req.Status))
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) DeleteSafetyReport(c *gin.Context) {
	if err := h.services.Reports.DeleteSafetyReport(c.Request.Context(), validatedID(c)); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("safety_reports", "delete")
	deleted(c, "safety report deleted")
}

func (h *Handlers) reportRoutes(group *gin.RouterGroup) {
	id := validation.ValidateIDParam("id")
	status := validation.ParseJSONRequest[models.UpdateReportStatusRequest]()

	group.GET("", validation.ValidateRequest(validation.ValidateListQuery(models.ReportListRules)), h.ListReports)
	group.GET("/:id", validation.ValidateRequest(id), h.GetReport)
	group.PUT("/:id/status", validation.ValidateRequest(id, status), h.UpdateReportStatus)
	group.DELETE("/:id", validation.ValidateRequest(id), h.DeleteReport)
}

func (h *Handlers) safetyReportRoutes(group *gin.RouterGroup) {
	id := validation.ValidateIDParam("id")
	status := validation.ParseJSONRequest[models.UpdateReportStatusRequest]()

	group.GET("", validation.ValidateRequest(validation.ValidateListQuery(models.SafetyReportListRules)), h.ListSafetyReports)
	group.GET("/:id", validation.ValidateRequest(id), h.GetSafetyReport)
	group.PUT("/:id/status", validation.ValidateRequest(id, status), h.UpdateSafetyReportStatus)
	group.DELETE("/:id", validation.ValidateRequest(id), h.DeleteSafetyReport)
}

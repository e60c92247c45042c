package api

import (
	"net/http"

	"dating-admin/internal/metrics"
	"dating-admin/internal/validation"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListBlindates(c *gin.Context) {
	page, err := h.services.Blindates.ListBlindates(c.Request.Context(), validatedQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) GetBlindate(c *gin.Context) {
	blindate, err := h.services.Blindates.GetBlindate(c.Request.Context(), validatedID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blindate)
}

func (h *Handlers) UpdateBlindateStatus(c *gin.Context) {
	req := validatedRequest[models.UpdateBlindateStatusRequest](c)

	blindate, err := h.services.Blindates.UpdateStatus(c.Request.Context(), validatedID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("blindates", string(req.Status))
	c.JSON(http.StatusOK, blindate)
}

func (h *Handlers) DeleteBlindate(c *gin.Context) {
	if err := h.services.Blindates.DeleteBlindate(c.Request.Context(), validatedID(c)); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("blindates", "delete")
	deleted(c, "blind date deleted")
}

func (h *Handlers) ListMatches(c *gin.Context) {
	page, err := h.services.Matches.ListMatches(c.Request.Context(), validatedQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) GetMatch(c *gin.Context) {
	match, err := h.services.Matches.GetMatch(c.Request.Context(), validatedID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *Handlers) Unmatch(c *gin.Context) {
	match, err := h.services.Matches.Unmatch(c.Request.Context(), validatedID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("matches", "unmatch")
	c.JSON(http.StatusOK, match)
}

func (h *Handlers) DeleteMatch(c *gin.Context) {
	if err := h.services.Matches.DeleteMatch(c.Request.Context(), validatedID(c)); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("matches", "delete")
	deleted(c, "match deleted")
}

func (h *Handlers) blindateRoutes(group *gin.RouterGroup) {
	id := validation.ValidateIDParam("id")

	group.GET("", validation.ValidateRequest(validation.ValidateListQuery(models.BlindateListRules)), h.ListBlindates)
	group.GET("/:id", validation.ValidateRequest(id), h.GetBlindate)
	group.PUT("/:id/status", validation.ValidateRequest(id, validation.ParseJSONRequest[models.UpdateBlindateStatusRequest]()), h.UpdateBlindateStatus)
	group.DELETE("/:id", validation.ValidateRequest(id), h.DeleteBlindate)
}

func (h *Handlers) matchRoutes(group *gin.RouterGroup) {
	id := validation.ValidateIDParam("id")

	group.GET("", validation.ValidateRequest(validation.ValidateListQuery(models.MatchListRules)), h.ListMatches)
	group.GET("/:id", validation.ValidateRequest(id), h.GetMatch)
	group.PUT("/:id/unmatch", validation.ValidateRequest(id), h.Unmatch)
	group.DELETE("/:id", validation.ValidateRequest(id), h.DeleteMatch)
}

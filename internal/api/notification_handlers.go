package api

import (
	"net/http"

	"dating-admin/internal/metrics"
	"dating-admin/internal/validation"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListNotifications(c *gin.Context) {
	page, err := h.services.Notifications.ListNotifications(c.Request.Context(), validatedQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SendNotification envoie à un membre ou à tous (broadcast)
func (h *Handlers) SendNotification(c *gin.Context) {
	req := validatedRequest[models.SendNotificationRequest](c)

	sent, err := h.services.Notifications.Send(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	action := "send"
	if req.Broadcast {
		action = "broadcast"
	}
	metrics.RecordAdminAction("notifications", action)
	c.JSON(http.StatusCreated, models.SendNotificationResponse{Sent: sent})
}

func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	notification, err := h.services.Notifications.MarkRead(c.Request.Context(), validatedID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *Handlers) DeleteNotification(c *gin.Context) {
	if err := h.services.Notifications.DeleteNotification(c.Request.Context(), validatedID(c)); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("notifications", "delete")
	deleted(c, "notification deleted")
}

func (h *Handlers) notificationRoutes(group *gin.RouterGroup) {
	id := validation.ValidateIDParam("id")

	group.GET("", validation.ValidateRequest(validation.ValidateListQuery(models.NotificationListRules)), h.ListNotifications)
	group.POST("", validation.ValidateRequest(validation.ParseJSONRequest[models.SendNotificationRequest]()), h.SendNotification)
	group.PUT("/:id/read", validation.ValidateRequest(id), h.MarkNotificationRead)
	group.DELETE("/:id", validation.ValidateRequest(id), h.DeleteNotification)
}

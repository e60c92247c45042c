package api

import (
	"net/http"

	"dating-admin/internal/metrics"
	"dating-admin/internal/validation"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListUsers(c *gin.Context) {
	page, err := h.services.Users.ListUsers(c.Request.Context(), validatedQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.services.Users.GetUser(c.Request.Context(), validatedID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) VerifyUser(c *gin.Context) {
	req := validatedRequest[models.VerifyUserRequest](c)

	user, err := h.services.Users.VerifyUser(c.Request.Context(), validatedID(c), *req.Verified)
	if err != nil {
		respondError(c, err)
		return
	}
	action := "verify"
	if !*req.Verified {
		action = "unverify"
	}
	metrics.RecordAdminAction("users", action)
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) BanUser(c *gin.Context) {
	req := validatedRequest[models.BanUserRequest](c)

	user, err := h.services.Users.BanUser(c.Request.Context(), validatedID(c), *req.Banned, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	action := "ban"
	if !*req.Banned {
		action = "unban"
	}
	metrics.RecordAdminAction("users", action)
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) SetUserPremium(c *gin.Context) {
	req := validatedRequest[models.PremiumUserRequest](c)

	user, err := h.services.Users.SetPremium(c.Request.Context(), validatedID(c), *req.Premium, req.Until)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("users", "premium")
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.services.Users.DeleteUser(c.Request.Context(), validatedID(c)); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordAdminAction("users", "delete")
	deleted(c, "user deleted")
}

func (h *Handlers) userRoutes(group *gin.RouterGroup) {
	id := validation.ValidateIDParam("id")

	group.GET("", validation.ValidateRequest(validation.ValidateListQuery(models.UserListRules)), h.ListUsers)
	group.GET("/:id", validation.ValidateRequest(id), h.GetUser)
	group.PUT("/:id/verify", validation.ValidateRequest(id, validation.ParseJSONRequest[models.VerifyUserRequest]()), h.VerifyUser)
	group.PUT("/:id/ban", validation.ValidateRequest(id, validation.ParseJSONRequest[models.BanUserRequest]()), h.BanUser)
	group.PUT("/:id/premium", validation.ValidateRequest(id, validation.ParseJSONRequest[models.PremiumUserRequest]()), h.SetUserPremium)
	group.DELETE("/:id", validation.ValidateRequest(id), h.DeleteUser)

	group.POST("/:id/photos", validation.ValidateRequest(id, validation.ValidateFileUpload), h.UploadUserPhotos)
	group.GET("/:id/photos", validation.ValidateRequest(id), h.ListUserPhotos)
	group.GET("/:id/photos/:filename", validation.ValidateRequest(id, validation.ValidateFilenameParam("filename")), h.DownloadUserPhoto)
}

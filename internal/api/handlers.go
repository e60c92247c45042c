package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"dating-admin/internal/auth"
	"dating-admin/internal/blindates"
	"dating-admin/internal/dashboard"
	"dating-admin/internal/matches"
	"dating-admin/internal/notifications"
	"dating-admin/internal/reports"
	"dating-admin/internal/users"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PhotoStore est la partie du StorageService utilisée par l'API
type PhotoStore interface {
	UploadUserPhotos(ctx context.Context, userID uuid.UUID, files []*multipart.FileHeader) ([]string, error)
	ListUserPhotos(ctx context.Context, userID uuid.UUID) ([]string, error)
	DownloadUserPhoto(ctx context.Context, userID uuid.UUID, filename string) (io.ReadCloser, error)
}

// Services regroupe les dépendances des handlers
type Services struct {
	Auth          auth.AuthService
	Users         users.UserService
	Blindates     blindates.BlindateService
	Matches       matches.MatchService
	Reports       reports.ReportService
	Notifications notifications.NotificationService
	Dashboard     dashboard.DashboardService
	Photos        PhotoStore
}

type Handlers struct {
	services Services
}

func NewHandlers(services Services) *Handlers {
	return &Handlers{services: services}
}

// Health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "dating-admin",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Login authentifie un opérateur et retourne un jeton bearer
func (h *Handlers) Login(c *gin.Context) {
	req := validatedRequest[models.LoginRequest](c)

	resp, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DashboardStats retourne les compteurs de la page d'accueil
func (h *Handlers) DashboardStats(c *gin.Context) {
	stats, err := h.services.Dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func validatedID(c *gin.Context) uuid.UUID {
	return c.MustGet("validated_id").(uuid.UUID)
}

func validatedQuery(c *gin.Context) models.ListQuery {
	return c.MustGet("validated_list_query").(models.ListQuery)
}

func validatedRequest[T any](c *gin.Context) T {
	return c.MustGet("validated_request").(T)
}

func deleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

package notifications

import (
	"context"
	"time"

	"dating-admin/pkg/models"

	"github.com/google/uuid"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Notification], error)
	GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	Send(ctx context.Context, req *models.SendNotificationRequest) (int, error)
	PurgeRead(ctx context.Context, maxAge time.Duration) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
}

// Recipients résout les destinataires d'un envoi
type Recipients interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

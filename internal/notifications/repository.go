package notifications

import (
	"context"
	"errors"
	"time"

	"dating-admin/internal/database"
	"dating-admin/internal/domain"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Notification], error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (*models.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteReadBefore(ctx context.Context, before time.Time) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
}

const insertBatchSize = 500

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) List(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Notification], error) {
	var filters []database.Scope
	switch query.Status {
	case models.NotificationStatusRead:
		filters = append(filters, func(db *gorm.DB) *gorm.DB { return db.Where("is_read = ?", true) })
	case models.NotificationStatusUnread:
		filters = append(filters, func(db *gorm.DB) *gorm.DB { return db.Where("is_read = ?", false) })
	}
	return database.ListPage[models.Notification](ctx, r.db, query, models.NotificationListRules, filters...)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("notification", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(notifications, insertBatchSize).Error
}

// MarkRead est idempotent: une notification déjà lue garde sa date de lecture
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (*models.Notification, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at, "updated_at": at})
	if result.Error != nil {
		return nil, result.Error
	}
	return r.GetByID(ctx, id)
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("notification", id.String())
	}
	return nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND read_at < ?", true, before).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

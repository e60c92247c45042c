package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type notificationServiceImpl struct {
	repo       NotificationRepository
	recipients Recipients
	tracer     trace.Tracer
	now        func() time.Time
}

func NewNotificationServiceImpl(repo NotificationRepository, recipients Recipients) NotificationService {
	return &notificationServiceImpl{
		repo:       repo,
		recipients: recipients,
		tracer:     otel.Tracer("dating-admin/notifications"),
		now:        time.Now,
	}
}

func (s *notificationServiceImpl) ListNotifications(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Notification], error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.ListNotifications")
	defer span.End()

	page, err := s.repo.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Error("NotificationService.ListNotifications: Failed to list notifications")
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return page, nil
}

func (s *notificationServiceImpl) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.GetNotification")
	defer span.End()

	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get notification %s: %w", id, err)
	}
	return notification, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.MarkRead")
	defer span.End()

	notification, err := s.repo.MarkRead(ctx, id, s.now())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to mark notification %s as read: %w", id, err)
	}
	return notification, nil
}

func (s *notificationServiceImpl) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "NotificationService.DeleteNotification")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	return nil
}

// Send crée une notification pour un membre, ou pour tous les membres non bannis si Broadcast
func (s *notificationServiceImpl) Send(ctx context.Context, req *models.SendNotificationRequest) (int, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.Send")
	defer span.End()
	span.SetAttributes(attribute.Bool("notification.broadcast", req.Broadcast))

	if err := checkSendRequest(req); err != nil {
		span.RecordError(err)
		return 0, err
	}

	var recipients []uuid.UUID
	if req.Broadcast {
		ids, err := s.recipients.ListIDs(ctx)
		if err != nil {
			span.RecordError(err)
			return 0, fmt.Errorf("failed to list recipients: %w", err)
		}
		recipients = lo.Uniq(ids)
	} else {
		if _, err := s.recipients.GetByID(ctx, *req.UserID); err != nil {
			span.RecordError(err)
			return 0, fmt.Errorf("failed to resolve recipient %s: %w", *req.UserID, err)
		}
		recipients = []uuid.UUID{*req.UserID}
	}

	notificationType := req.Type
	if notificationType == "" {
		notificationType = models.NotificationSystem
	}

	notifications := lo.Map(recipients, func(userID uuid.UUID, _ int) *models.Notification {
		return &models.Notification{
			UserID:  userID,
			Type:    notificationType,
			Title:   strings.TrimSpace(req.Title),
			Content: strings.TrimSpace(req.Content),
			Data:    models.JSON(req.Data),
		}
	})

	logutils.Log.Infof("NotificationService.Send: Sending %q to %d recipients", req.Title, len(notifications))

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Error("NotificationService.Send: Failed to create notifications")
		return 0, fmt.Errorf("failed to create notifications: %w", err)
	}

	return len(notifications), nil
}

func (s *notificationServiceImpl) PurgeRead(ctx context.Context, maxAge time.Duration) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.PurgeRead")
	defer span.End()

	deleted, err := s.repo.DeleteReadBefore(ctx, s.now().Add(-maxAge))
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to purge read notifications: %w", err)
	}
	return deleted, nil
}

func (s *notificationServiceImpl) CountUnread(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.CountUnread")
	defer span.End()

	count, err := s.repo.CountUnread(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func checkSendRequest(req *models.SendNotificationRequest) error {
	switch {
	case req.Broadcast && req.UserID != nil:
		return domain.Invalid("userId and broadcast are mutually exclusive", nil)
	case !req.Broadcast && req.UserID == nil:
		return domain.Invalid("either userId or broadcast is required", nil)
	case strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "":
		return domain.Invalid("title and content are required", nil)
	}
	return nil
}

package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type userServiceImpl struct {
	repo   UserRepository
	photos PhotoCleaner
	tracer trace.Tracer
	now    func() time.Time
}

// NewUserServiceImpl crée le service; photos peut être nil si aucun stockage n'est configuré
func NewUserServiceImpl(repo UserRepository, photos PhotoCleaner) UserService {
	return &userServiceImpl{
		repo:   repo,
		photos: photos,
		tracer: otel.Tracer("dating-admin/users"),
		now:    time.Now,
	}
}

func (s *userServiceImpl) ListUsers(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.User], error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListUsers")
	defer span.End()

	logutils.Log.Debugf("UserService.ListUsers: page=%d limit=%d sort=%s order=%s status=%q search=%q",
		query.Page, query.Limit, query.Sort, query.Order, query.Status, query.Search)

	page, err := s.repo.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Error("UserService.ListUsers: Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	logutils.Log.Debugf("UserService.ListUsers: Retrieved %d of %d users", len(page.Items), page.Pagination.Total)
	return page, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetUser")
	defer span.End()

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (s *userServiceImpl) VerifyUser(ctx context.Context, id uuid.UUID, verified bool) (*models.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.VerifyUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id.String()), attribute.Bool("user.verified", verified))

	logutils.Log.Infof("UserService.VerifyUser: Setting verified=%t for user %s", verified, id)

	user, err := s.repo.Update(ctx, id, map[string]interface{}{"is_verified": verified})
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Errorf("UserService.VerifyUser: Failed to update user %s", id)
		return nil, fmt.Errorf("failed to update verification of user %s: %w", id, err)
	}

	return user, nil
}

func (s *userServiceImpl) BanUser(ctx context.Context, id uuid.UUID, banned bool, reason string) (*models.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.BanUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id.String()), attribute.Bool("user.banned", banned))

	reason = strings.TrimSpace(reason)
	updates := map[string]interface{}{
		"is_banned":  banned,
		"ban_reason": reason,
	}
	if !banned {
		updates["ban_reason"] = ""
	}

	logutils.Log.Infof("UserService.BanUser: Setting banned=%t for user %s", banned, id)

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Errorf("UserService.BanUser: Failed to update user %s", id)
		return nil, fmt.Errorf("failed to update ban status of user %s: %w", id, err)
	}

	return user, nil
}

func (s *userServiceImpl) SetPremium(ctx context.Context, id uuid.UUID, premium bool, until *time.Time) (*models.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.SetPremium")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id.String()), attribute.Bool("user.premium", premium))

	if premium && until != nil && !until.After(s.now()) {
		err := domain.Invalid("premium end date must be in the future", nil)
		span.RecordError(err)
		return nil, err
	}

	updates := map[string]interface{}{
		"is_premium":    premium,
		"premium_until": nil,
	}
	if premium && until != nil {
		updates["premium_until"] = *until
	}

	logutils.Log.Infof("UserService.SetPremium: Setting premium=%t for user %s", premium, id)

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Errorf("UserService.SetPremium: Failed to update user %s", id)
		return nil, fmt.Errorf("failed to update premium status of user %s: %w", id, err)
	}

	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "UserService.DeleteUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id.String()))

	logutils.Log.Infof("UserService.DeleteUser: Deleting user %s", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Errorf("UserService.DeleteUser: Failed to delete user %s", id)
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	if s.photos != nil {
		// l'utilisateur est déjà supprimé, un échec ici laisse seulement des fichiers orphelins
		removed, err := s.photos.DeleteUserPhotos(ctx, id)
		if err != nil {
			span.RecordError(err)
			logutils.Log.WithError(err).Warnf("UserService.DeleteUser: Failed to delete photos of user %s", id)
		} else if removed > 0 {
			logutils.Log.Infof("UserService.DeleteUser: Removed %d photos of user %s", removed, id)
		}
	}

	return nil
}

func (s *userServiceImpl) Counts(ctx context.Context) (*Counts, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Counts")
	defer span.End()

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return counts, nil
}

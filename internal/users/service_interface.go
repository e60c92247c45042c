package users

import (
	"context"
	"time"

	"dating-admin/pkg/models"

	"github.com/google/uuid"
)

type UserService interface {
	ListUsers(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.User], error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	VerifyUser(ctx context.Context, id uuid.UUID, verified bool) (*models.User, error)
	BanUser(ctx context.Context, id uuid.UUID, banned bool, reason string) (*models.User, error)
	SetPremium(ctx context.Context, id uuid.UUID, premium bool, until *time.Time) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (*Counts, error)
}

// PhotoCleaner supprime les photos stockées d'un utilisateur
type PhotoCleaner interface {
	DeleteUserPhotos(ctx context.Context, userID uuid.UUID) (int, error)
}

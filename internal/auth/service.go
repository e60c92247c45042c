package auth

import (
	"context"
	"fmt"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	admins AdminRepository
	tokens *TokenManager
	tracer trace.Tracer
}

func NewAuthService(admins AdminRepository, tokens *TokenManager) AuthService {
	return &authService{
		admins: admins,
		tokens: tokens,
		tracer: otel.Tracer("dating-admin/auth"),
	}
}

// Login ne distingue pas un email inconnu d'un mauvais mot de passe
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			logutils.Log.Warnf("AuthService.Login: Unknown account %s", req.Email)
			return nil, errInvalidCredentials
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load admin account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		logutils.Log.Warnf("AuthService.Login: Wrong password for %s", req.Email)
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	logutils.Log.Infof("AuthService.Login: %s signed in", admin.Email)
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt, Admin: *admin}, nil
}

// HashPassword est utilisé par le générateur pour créer les comptes
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

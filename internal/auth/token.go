package auth

import (
	"errors"
	"fmt"
	"time"

	"dating-admin/internal/domain"
	"dating-admin/pkg/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "dating-admin"

// Claims représente le contenu du jeton d'un opérateur
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signe et vérifie les jetons HS256
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue retourne le jeton signé et sa date d'expiration
func (m *TokenManager) Issue(admin *models.Admin) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("JWT secret not configured")
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse vérifie la signature, l'émetteur et l'expiration du jeton
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, fmt.Errorf("JWT secret not configured: %w", domain.ErrUnauthorized)
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid claims: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dating-admin/internal/domain"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-valid-admin-token-secret-32-chars"

type fakeAdmins struct {
	admins map[string]*models.Admin
}

func (f *fakeAdmins) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin, ok := f.admins[email]
	if !ok {
		return nil, domain.NotFound("admin", email)
	}
	return admin, nil
}

func (f *fakeAdmins) Upsert(ctx context.Context, admin *models.Admin) error {
	f.admins[admin.Email] = admin
	return nil
}

func newAdmin(t *testing.T, email, password string) *models.Admin {
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &models.Admin{ID: uuid.New(), Email: email, PasswordHash: hash, Role: models.RoleAdmin}
}

func TestLogin(t *testing.T) {
	admin := newAdmin(t, "ops@example.com", "s3cret-pass")
	tokens := NewTokenManager(testSecret, time.Hour)
	svc := NewAuthService(&fakeAdmins{admins: map[string]*models.Admin{admin.Email: admin}}, tokens)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ops@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, admin.ID, resp.Admin.ID)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	admin := newAdmin(t, "ops@example.com", "s3cret-pass")
	svc := NewAuthService(&fakeAdmins{admins: map[string]*models.Admin{admin.Email: admin}}, NewTokenManager(testSecret, time.Hour))

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "ops@example.com", "nope-nope"},
		{"unknown account", "ghost@example.com", "s3cret-pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &models.LoginRequest{Email: tt.email, Password: tt.password})
			require.Error(t, err)
			assert.True(t, domain.IsUnauthorized(err))
		})
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenManager(testSecret, -time.Minute)
	signed, _, err := tokens.Issue(&models.Admin{ID: uuid.New(), Email: "ops@example.com"})
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestParseRejectsForeignSignature(t *testing.T) {
	other := NewTokenManager("another-secret-of-sufficient-length-123", time.Hour)
	signed, _, err := other.Issue(&models.Admin{ID: uuid.New()})
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).Parse(signed)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).Parse(unsigned)
	assert.Error(t, err)
}

func TestIssueWithoutSecret(t *testing.T) {
	_, _, err := NewTokenManager("", time.Hour).Issue(&models.Admin{})
	assert.Error(t, err)
}

func TestRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokenManager(testSecret, time.Hour)
	valid, _, err := tokens.Issue(&models.Admin{ID: uuid.New(), Email: "ops@example.com", Role: models.RoleModerator})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", RequireToken(tokens), func(c *gin.Context) {
		claims, ok := CurrentAdmin(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), models.RoleModerator)
			} else {
				assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}

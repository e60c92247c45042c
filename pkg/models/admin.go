package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Admin est un compte opérateur du tableau de bord
type Admin struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string    `json:"name" gorm:"type:varchar(120)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Role         string    `json:"role" gorm:"type:varchar(20);not null;default:'admin'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Admin) TableName() string {
	return "admins"
}

// BeforeCreate hook GORM pour initialiser l'ID
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Role == "" {
		a.Role = RoleAdmin
	}
	return nil
}

// LoginRequest est la requête d'authentification d'un opérateur
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
}

// LoginResponse contient le jeton bearer délivré après authentification
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     Admin     `json:"admin"`
}

// DashboardStats agrège les compteurs affichés sur la page d'accueil
type DashboardStats struct {
	Users               int64 `json:"users"`
	VerifiedUsers       int64 `json:"verifiedUsers"`
	BannedUsers         int64 `json:"bannedUsers"`
	PremiumUsers        int64 `json:"premiumUsers"`
	Matches             int64 `json:"matches"`
	ActiveMatches       int64 `json:"activeMatches"`
	Blindates           int64 `json:"blindates"`
	UpcomingBlindates   int64 `json:"upcomingBlindates"`
	PendingReports      int64 `json:"pendingReports"`
	OpenSafetyReports   int64 `json:"openSafetyReports"`
	UnreadNotifications int64 `json:"unreadNotifications"`
}

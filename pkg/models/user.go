package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statuts de filtre reconnus pour les utilisateurs
const (
	UserStatusActive     = "active"
	UserStatusBanned     = "banned"
	UserStatusVerified   = "verified"
	UserStatusUnverified = "unverified"
	UserStatusPremium    = "premium"
)

// User est un membre de l'application de rencontre
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	FullName     string     `json:"fullName" gorm:"type:varchar(120);not null"`
	Email        string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Gender       string     `json:"gender" gorm:"type:varchar(20)"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	City         string     `json:"city" gorm:"type:varchar(120);index"`
	Bio          string     `json:"bio,omitempty" gorm:"type:text"`
	IsVerified   bool       `json:"isVerified" gorm:"default:false;index"`
	IsBanned     bool       `json:"isBanned" gorm:"default:false;index"`
	BanReason    string     `json:"banReason,omitempty" gorm:"type:text"`
	IsPremium    bool       `json:"isPremium" gorm:"default:false;index"`
	PremiumUntil *time.Time `json:"premiumUntil,omitempty"`
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hook GORM pour initialiser l'ID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserListRules décrit les tris et filtres acceptés sur /users
var UserListRules = ListRules{
	DefaultSort: "createdAt",
	SortFields: map[string]string{
		"createdAt":    "created_at",
		"fullName":     "full_name",
		"email":        "email",
		"city":         "city",
		"lastActiveAt": "last_active_at",
	},
	Statuses: []string{
		UserStatusActive,
		UserStatusBanned,
		UserStatusVerified,
		UserStatusUnverified,
		UserStatusPremium,
	},
	SearchColumns: []string{"full_name", "email", "city"},
}

// VerifyUserRequest change le statut de vérification
type VerifyUserRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// BanUserRequest bannit ou réhabilite un utilisateur
type BanUserRequest struct {
	Banned *bool  `json:"banned" binding:"required"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// PremiumUserRequest active ou désactive l'abonnement premium
type PremiumUserRequest struct {
	Premium *bool      `json:"premium" binding:"required"`
	Until   *time.Time `json:"until,omitempty"`
}

// PhotoListResponse liste les photos stockées pour un utilisateur
type PhotoListResponse struct {
	UserID uuid.UUID `json:"userId"`
	Files  []string  `json:"files"`
	Count  int       `json:"count"`
}

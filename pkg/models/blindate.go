package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlindateStatus string

const (
	BlindatePending   BlindateStatus = "pending"
	BlindateConfirmed BlindateStatus = "confirmed"
	BlindateCompleted BlindateStatus = "completed"
	BlindateCancelled BlindateStatus = "cancelled"
)

// Blindate est un rendez-vous à l'aveugle organisé entre deux membres
type Blindate struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	RequesterID   uuid.UUID      `json:"requesterId" gorm:"type:uuid;not null;index"`
	RequesterName string         `json:"requesterName" gorm:"type:varchar(120)"`
	PartnerID     uuid.UUID      `json:"partnerId" gorm:"type:uuid;not null;index"`
	PartnerName   string         `json:"partnerName" gorm:"type:varchar(120)"`
	Venue         string         `json:"venue" gorm:"type:varchar(255)"`
	City          string         `json:"city" gorm:"type:varchar(120)"`
	ScheduledAt   time.Time      `json:"scheduledAt" gorm:"index"`
	Status        BlindateStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes         string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (Blindate) TableName() string {
	return "blindates"
}

// BeforeCreate hook GORM pour initialiser l'ID
func (b *Blindate) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

var BlindateListRules = ListRules{
	DefaultSort: "scheduledAt",
	SortFields: map[string]string{
		"scheduledAt": "scheduled_at",
		"createdAt":   "created_at",
		"status":      "status",
		"city":        "city",
	},
	Statuses: []string{
		string(BlindatePending),
		string(BlindateConfirmed),
		string(BlindateCompleted),
		string(BlindateCancelled),
	},
	SearchColumns: []string{"requester_name", "partner_name", "venue", "city"},
}

// UpdateBlindateStatusRequest change le statut d'un rendez-vous
type UpdateBlindateStatusRequest struct {
	Status BlindateStatus `json:"status" binding:"required" validate:"oneof=pending confirmed completed cancelled"`
	Notes  string         `json:"notes,omitempty" validate:"max=1000"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchActive    MatchStatus = "active"
	MatchUnmatched MatchStatus = "unmatched"
)

// Match relie deux membres qui se sont mutuellement aimés
type Match struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	UserAID   uuid.UUID   `json:"userAId" gorm:"type:uuid;not null;index"`
	UserAName string      `json:"userAName" gorm:"type:varchar(120)"`
	UserBID   uuid.UUID   `json:"userBId" gorm:"type:uuid;not null;index"`
	UserBName string      `json:"userBName" gorm:"type:varchar(120)"`
	Score     int         `json:"score" gorm:"default:0;check:score >= 0 AND score <= 100"`
	Status    MatchStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	MatchedAt time.Time   `json:"matchedAt" gorm:"index"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (Match) TableName() string {
	return "matches"
}

// BeforeCreate hook GORM pour initialiser l'ID et la date du match
func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.MatchedAt.IsZero() {
		m.MatchedAt = time.Now()
	}
	return nil
}

var MatchListRules = ListRules{
	DefaultSort: "matchedAt",
	SortFields: map[string]string{
		"matchedAt": "matched_at",
		"score":     "score",
		"status":    "status",
	},
	Statuses: []string{
		string(MatchActive),
		string(MatchUnmatched),
	},
	SearchColumns: []string{"user_a_name", "user_b_name"},
}

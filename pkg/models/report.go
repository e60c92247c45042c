package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending       ReportStatus = "pending"
	ReportReviewing     ReportStatus = "reviewing"
	ReportInvestigating ReportStatus = "investigating"
	ReportResolved      ReportStatus = "resolved"
	ReportDismissed     ReportStatus = "dismissed"
)

// IsClosed retourne true si le signalement est dans un état final
func (s ReportStatus) IsClosed() bool {
	return s == ReportResolved || s == ReportDismissed
}

// Report est un signalement d'un membre par un autre membre
type Report struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	ReporterID     uuid.UUID    `json:"reporterId" gorm:"type:uuid;not null;index"`
	ReporterName   string       `json:"reporterName" gorm:"type:varchar(120)"`
	ReportedUserID uuid.UUID    `json:"reportedUserId" gorm:"type:uuid;not null;index"`
	ReportedName   string       `json:"reportedName" gorm:"type:varchar(120)"`
	Reason         string       `json:"reason" gorm:"type:varchar(120);not null"`
	Description    string       `json:"description" gorm:"type:text"`
	Status         ReportStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNote      string       `json:"adminNote,omitempty" gorm:"type:text"`
	ResolvedAt     *time.Time   `json:"resolvedAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (Report) TableName() string {
	return "reports"
}

// BeforeCreate hook GORM pour initialiser l'ID
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

var ReportListRules = ListRules{
	DefaultSort: "createdAt",
	SortFields: map[string]string{
		"createdAt": "created_at",
		"status":    "status",
		"reason":    "reason",
	},
	Statuses: []string{
		string(ReportPending),
		string(ReportReviewing),
		string(ReportResolved),
		string(ReportDismissed),
	},
	SearchColumns: []string{"reason", "description", "reporter_name", "reported_name"},
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SafetyReport est un signalement de sécurité lié à un rendez-vous
type SafetyReport struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	ReporterID   uuid.UUID    `json:"reporterId" gorm:"type:uuid;not null;index"`
	ReporterName string       `json:"reporterName" gorm:"type:varchar(120)"`
	BlindateID   *uuid.UUID   `json:"blindateId,omitempty" gorm:"type:uuid;index"`
	Severity     Severity     `json:"severity" gorm:"type:varchar(20);not null;default:'medium';index"`
	Location     string       `json:"location" gorm:"type:varchar(255)"`
	Description  string       `json:"description" gorm:"type:text"`
	Status       ReportStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNote    string       `json:"adminNote,omitempty" gorm:"type:text"`
	ResolvedAt   *time.Time   `json:"resolvedAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (SafetyReport) TableName() string {
	return "safety_reports"
}

// BeforeCreate hook GORM pour initialiser l'ID
func (r *SafetyReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

var SafetyReportListRules = ListRules{
	DefaultSort: "createdAt",
	SortFields: map[string]string{
		"createdAt": "created_at",
		"severity":  "severity",
		"status":    "status",
	},
	Statuses: []string{
		string(ReportPending),
		string(ReportInvestigating),
		string(ReportResolved),
		string(ReportDismissed),
	},
	SearchColumns: []string{"description", "location", "reporter_name"},
}

// UpdateReportStatusRequest change le statut d'un signalement
type UpdateReportStatusRequest struct {
	Status    ReportStatus `json:"status" binding:"required" validate:"oneof=pending reviewing investigating resolved dismissed"`
	AdminNote string       `json:"adminNote,omitempty" validate:"max=2000"`
}

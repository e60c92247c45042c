package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationMessage  NotificationType = "message"
	NotificationMatch    NotificationType = "match"
	NotificationLike     NotificationType = "like"
	NotificationBlindate NotificationType = "blindate"
	NotificationReport   NotificationType = "report"
	NotificationSystem   NotificationType = "system"
)

// Statuts de filtre pour les notifications
const (
	NotificationStatusRead   = "read"
	NotificationStatusUnread = "unread"
)

// Notification est le modèle persisté des notifications envoyées aux membres.
// Data peut contenir des champs hérités (sender, from, text...) que le client normalise.
type Notification struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID        `json:"userId" gorm:"type:uuid;not null;index"`
	SenderID  *uuid.UUID       `json:"senderId,omitempty" gorm:"type:uuid;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null;default:'system';index"`
	Title     string           `json:"title" gorm:"type:varchar(255)"`
	Content   string           `json:"content" gorm:"type:text"`
	IsRead    bool             `json:"isRead" gorm:"default:false;index"`
	ReadAt    *time.Time       `json:"readAt,omitempty" gorm:"index"`
	Data      JSON             `json:"data,omitempty" gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate hook GORM pour initialiser l'ID et les données
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Data == nil {
		n.Data = JSON{}
	}
	if n.Type == "" {
		n.Type = NotificationSystem
	}
	return nil
}

// MarkRead passe la notification à l'état lu
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
}

var NotificationListRules = ListRules{
	DefaultSort: "createdAt",
	SortFields: map[string]string{
		"createdAt": "created_at",
		"type":      "type",
		"title":     "title",
	},
	Statuses: []string{
		NotificationStatusRead,
		NotificationStatusUnread,
	},
	SearchColumns: []string{"title", "content"},
}

// SendNotificationRequest envoie une notification à un membre ou à tous (Broadcast)
// @Description Requête d'envoi de notification
type SendNotificationRequest struct {
	UserID    *uuid.UUID             `json:"userId,omitempty"`
	Broadcast bool                   `json:"broadcast"`
	Type      NotificationType       `json:"type" validate:"omitempty,oneof=message match like blindate report system"`
	Title     string                 `json:"title" binding:"required" validate:"required,max=255"`
	Content   string                 `json:"content" binding:"required" validate:"required,max=2000"`
	Data      map[string]interface{} `json:"data,omitempty"`
} // @name SendNotificationRequest

// SendNotificationResponse indique combien de notifications ont été créées
type SendNotificationResponse struct {
	Sent int `json:"sent" example:"1"`
}

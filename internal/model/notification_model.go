package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is one raw row per triggering event (a comment, a reply).
// The feed engine collapses many of these into one display entry; this
// table is never rendered directly.
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1;index:idx_notifications_user_status,priority:1" json:"user_id"`
	PostID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"post_id"`
	Post      Post           `gorm:"foreignKey:PostID" json:"-"`
	CommentID *uuid.UUID     `gorm:"type:uuid" json:"comment_id,omitempty"`
	ActorID   uuid.UUID      `gorm:"type:uuid;not null" json:"actor_id"`
	Kind      string         `gorm:"type:varchar(50);not null" json:"kind"`
	Status    string         `gorm:"type:varchar(20);not null;default:'UNSEEN';index:idx_notifications_user_status,priority:2" json:"status"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_notifications_user_created,priority:2" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

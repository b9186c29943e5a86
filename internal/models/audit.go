package models

import (
	"time"

	"gorm.io/datatypes"
)

// IdeaActionLog captures auditable actions taken against an idea.
type IdeaActionLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	IdeaID    uint              `gorm:"not null;index" json:"idea_id"`
	ActorID   uint              `gorm:"not null" json:"actor_id"`
	ActorRole string            `gorm:"size:32;not null" json:"actor_role"`
	Action    string            `gorm:"size:64;not null" json:"action"`
	Detail    string            `gorm:"size:255" json:"detail"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

// IdeaStatusLog records a status transition for an idea.
type IdeaStatusLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IdeaID     uint      `gorm:"not null;index" json:"idea_id"`
	FromStatus string    `gorm:"size:32" json:"from_status"`
	ToStatus   string    `gorm:"size:32;not null" json:"to_status"`
	ChangedBy  uint      `json:"changed_by"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an audit entry for an admin mutation of curriculum or student data.
type ActivityLog struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ActorID       uint              `gorm:"not null;index" json:"actorId"`
	ActorRole     string            `gorm:"size:32;not null" json:"actorRole"`
	Action        string            `gorm:"size:64;not null;index" json:"action"`
	EntityType    string            `gorm:"size:32;not null;index" json:"entityType"`
	EntityID      *uint             `json:"entityId"`
	CorrelationID string            `gorm:"size:64" json:"correlationId,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt     time.Time         `gorm:"index" json:"createdAt"`
}

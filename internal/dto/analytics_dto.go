package dto

import (
	"time"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// PincodeCount is one row of the enrollment breakdown.
type PincodeCount struct {
	Pincode string `json:"pincode"`
	Count   int64  `json:"count"`
}

// EnrollmentStats aggregates signups per pincode for a timeframe.
type EnrollmentStats struct {
	Timeframe string         `json:"timeframe"`
	Since     *time.Time     `json:"since"`
	Items     []PincodeCount `json:"items"`
	CacheHit  bool           `json:"cacheHit"`
}

// EnrolledStudent is the projection returned for pincode drill-downs.
type EnrolledStudent struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	School string `json:"school"`
}

// PincodeStudentsResponse lists students registered under one pincode.
type PincodeStudentsResponse struct {
	Pincode   string            `json:"pincode"`
	Timeframe string            `json:"timeframe"`
	Count     int64             `json:"count"`
	Students  []EnrolledStudent `json:"students"`
}

// ActivityListRequest defines filters for retrieving activity logs.
type ActivityListRequest struct {
	Page       int
	PageSize   int
	ActorID    uint
	Action     string
	EntityType string
}

// ActivityResponse serializes activity log entries.
type ActivityResponse struct {
	ID            uint                   `json:"id"`
	ActorID       uint                   `json:"actorId"`
	ActorRole     string                 `json:"actorRole"`
	Action        string                 `json:"action"`
	EntityType    string                 `json:"entityType"`
	EntityID      *uint                  `json:"entityId"`
	CorrelationID string                 `json:"correlationId,omitempty"`
	Metadata      map[string]interface{} `json:"metadata"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ActivityListResponse wraps paginated activity logs.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewActivityResponse converts a model into an activity DTO.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	metadata := make(map[string]interface{}, len(entry.Metadata))
	for key, value := range entry.Metadata {
		metadata[key] = value
	}
	return ActivityResponse{
		ID:            entry.ID,
		ActorID:       entry.ActorID,
		ActorRole:     entry.ActorRole,
		Action:        entry.Action,
		EntityType:    entry.EntityType,
		EntityID:      entry.EntityID,
		CorrelationID: entry.CorrelationID,
		Metadata:      metadata,
		CreatedAt:     entry.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/afkar-io/afkar-api/internal/models"
)

// ActionLogResponse is the serialized representation of one audit entry.
type ActionLogResponse struct {
	ID        uint                   `json:"id"`
	IdeaID    uint                   `json:"idea_id"`
	ActorID   uint                   `json:"actor_id"`
	ActorRole string                 `json:"actor_role"`
	Action    string                 `json:"action"`
	Detail    string                 `json:"detail"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// ActionLogListRequest narrows audit trail listings.
type ActionLogListRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	IdeaID   uint   `json:"idea_id"`
	ActorID  uint   `json:"actor_id"`
	Action   string `json:"action"`
}

// ActionLogListResponse wraps a paginated audit listing.
type ActionLogListResponse struct {
	Items      []ActionLogResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// NewActionLogResponse converts a model into a DTO.
func NewActionLogResponse(model models.IdeaActionLog) ActionLogResponse {
	return ActionLogResponse{
		ID:        model.ID,
		IdeaID:    model.IdeaID,
		ActorID:   model.ActorID,
		ActorRole: model.ActorRole,
		Action:    model.Action,
		Detail:    model.Detail,
		Metadata:  model.Metadata,
		CreatedAt: model.CreatedAt,
	}
}

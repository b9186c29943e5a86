package dto

import (
	"time"

	"github.com/afkar-io/afkar-api/internal/models"
)

// IdeaCreateRequest describes the payload for creating a draft idea.
type IdeaCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,min=10"`
	Category    string `json:"category" validate:"required,max=64"`
	IsUrgent    bool   `json:"is_urgent"`
}

// IdeaUpdateRequest describes edits to an existing draft.
type IdeaUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,min=10"`
	Category    *string `json:"category" validate:"omitempty,max=64"`
	IsUrgent    *bool   `json:"is_urgent"`
}

// IdeaResponse is the serialized representation of an idea.
type IdeaResponse struct {
	ID            uint       `json:"id"`
	ReferenceCode string     `json:"reference_code"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Status        string     `json:"status"`
	SubmitterID   uint       `json:"submitter_id"`
	IsDraft       bool       `json:"is_draft"`
	IsUrgent      bool       `json:"is_urgent"`
	AvgScore      *float64   `json:"avg_score"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IdeaListResponse wraps a paginated idea search result.
type IdeaListResponse struct {
	Items      []IdeaResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// CommentCreateRequest describes the payload for commenting on an idea.
type CommentCreateRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}

// CommentResponse is the serialized representation of an idea comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	IdeaID    uint      `json:"idea_id"`
	AuthorID  uint      `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentResponse is the serialized representation of an idea attachment.
type AttachmentResponse struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewIdeaResponse converts a model into a DTO.
func NewIdeaResponse(model models.Idea) IdeaResponse {
	return IdeaResponse{
		ID:            model.ID,
		ReferenceCode: model.ReferenceCode,
		Title:         model.Title,
		Description:   model.Description,
		Category:      model.Category,
		Status:        model.Status,
		SubmitterID:   model.SubmitterID,
		IsDraft:       model.IsDraft,
		IsUrgent:      model.IsUrgent,
		AvgScore:      model.AvgScore,
		SubmittedAt:   model.SubmittedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewIdeaResponseSlice converts a slice of models into DTOs.
func NewIdeaResponseSlice(ideas []models.Idea) []IdeaResponse {
	responses := make([]IdeaResponse, 0, len(ideas))
	for _, idea := range ideas {
		responses = append(responses, NewIdeaResponse(idea))
	}

	return responses
}

// NewCommentResponse converts a model into a DTO.
func NewCommentResponse(model models.IdeaComment) CommentResponse {
	return CommentResponse{
		ID:        model.ID,
		IdeaID:    model.IdeaID,
		AuthorID:  model.AuthorID,
		Body:      model.Body,
		CreatedAt: model.CreatedAt,
	}
}

// NewAttachmentResponse converts a model into a DTO.
func NewAttachmentResponse(model models.IdeaAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:        model.ID,
		FileName:  model.FileName,
		URL:       model.URL,
		MimeType:  model.MimeType,
		SizeBytes: model.SizeBytes,
		CreatedAt: model.CreatedAt,
	}
}

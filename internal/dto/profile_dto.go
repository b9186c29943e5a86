package dto

import (
	"time"

	"github.com/afkar-io/afkar-api/internal/models"
)

// ProfileResponse is the serialized representation of a user profile.
type ProfileResponse struct {
	ID                uint      `json:"id"`
	Email             string    `json:"email"`
	DisplayName       string    `json:"display_name"`
	Role              string    `json:"role"`
	Department        string    `json:"department"`
	AvatarURL         string    `json:"avatar_url"`
	PreferredLanguage string    `json:"preferred_language"`
	Active            bool      `json:"active"`
	EmailConfirmed    bool      `json:"email_confirmed"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProfileUpdateRequest describes self-service profile updates.
type ProfileUpdateRequest struct {
	DisplayName       *string `json:"display_name" validate:"omitempty,min=2"`
	Department        *string `json:"department" validate:"omitempty,max=128"`
	PreferredLanguage *string `json:"preferred_language" validate:"omitempty,oneof=en ar"`
}

// ProfileAdminUpdateRequest describes elevated fields only management may change.
type ProfileAdminUpdateRequest struct {
	Role   *string `json:"role" validate:"omitempty,oneof=submitter evaluator management"`
	Active *bool   `json:"active"`
}

// ProfileListResponse wraps a paginated profile listing.
type ProfileListResponse struct {
	Items      []ProfileResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// AvatarResponse describes a stored profile picture.
type AvatarResponse struct {
	URL       string `json:"url"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// NewProfileResponse converts a model into a DTO.
func NewProfileResponse(model models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                model.ID,
		Email:             model.Email,
		DisplayName:       model.DisplayName,
		Role:              model.Role,
		Department:        model.Department,
		AvatarURL:         model.AvatarURL,
		PreferredLanguage: model.PreferredLanguage,
		Active:            model.Active,
		EmailConfirmed:    model.EmailConfirmed,
		CreatedAt:         model.CreatedAt,
	}
}

// NewProfileResponseSlice converts a slice of models into DTOs.
func NewProfileResponseSlice(profiles []models.Profile) []ProfileResponse {
	responses := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, NewProfileResponse(profile))
	}

	return responses
}

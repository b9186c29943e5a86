package models

import "time"

// Idea status values.
const (
	IdeaStatusDraft       = "draft"
	IdeaStatusSubmitted   = "submitted"
	IdeaStatusUnderReview = "under_review"
	IdeaStatusApproved    = "approved"
	IdeaStatusRejected    = "rejected"
)

// Idea represents an innovation proposal raised by a submitter.
type Idea struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ReferenceCode string     `gorm:"size:32;index" json:"reference_code"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Category      string     `gorm:"size:64;index" json:"category"`
	Status        string     `gorm:"size:32;not null;default:draft;index" json:"status"`
	SubmitterID   uint       `gorm:"not null;index" json:"submitter_id"`
	// No column defaults on these flags: gorm omits zero-valued fields that
	// carry a default tag from inserts, which would flip a submitted idea
	// (IsDraft=false) back to a draft. Writers set both explicitly.
	IsDraft  bool `gorm:"not null" json:"is_draft"`
	IsActive bool `gorm:"not null" json:"is_active"`
	IsUrgent      bool       `gorm:"not null;default:false" json:"is_urgent"`
	AvgScore      *float64   `json:"avg_score"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Attachments []IdeaAttachment `json:"attachments,omitempty"`
	Comments    []IdeaComment    `json:"comments,omitempty"`
}

// Editable reports whether the idea is still an owner-editable draft.
func (i Idea) Editable() bool {
	return i.IsDraft && i.IsActive
}

// IdeaComment is a free-text remark attached to an idea.
type IdeaComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IdeaID    uint      `gorm:"not null;index" json:"idea_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IdeaAttachment is a stored file linked to an idea.
type IdeaAttachment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IdeaID     uint      `gorm:"not null;index" json:"idea_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	MimeType   string    `gorm:"size:128" json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Checksum   string    `gorm:"size:64" json:"checksum"`
	UploadedBy uint      `gorm:"index" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

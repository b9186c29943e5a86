package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/models"
)

// AttachmentRepository persists idea attachment records.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.IdeaAttachment) error
	ListByIdea(ctx context.Context, ideaID uint) ([]models.IdeaAttachment, error)
	Delete(ctx context.Context, id uint) error
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository constructs the attachment repository.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.IdeaAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) ListByIdea(ctx context.Context, ideaID uint) ([]models.IdeaAttachment, error) {
	var attachments []models.IdeaAttachment
	err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}

func (r *attachmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.IdeaAttachment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/models"
)

// CommentRepository persists idea comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.IdeaComment) error
	ListByIdea(ctx context.Context, ideaID uint) ([]models.IdeaComment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository constructs the comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.IdeaComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByIdea(ctx context.Context, ideaID uint) ([]models.IdeaComment, error) {
	var comments []models.IdeaComment
	err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/models"
)

// ActionLogFilter narrows audit trail queries.
type ActionLogFilter struct {
	Page     int
	PageSize int
	IdeaID   *uint
	ActorID  *uint
	Action   string
}

// AuditRepository persists the idea audit trail and status transitions.
type AuditRepository interface {
	CreateAction(ctx context.Context, entry *models.IdeaActionLog) error
	ListActions(ctx context.Context, filter ActionLogFilter) ([]models.IdeaActionLog, int64, error)
	CreateStatusChange(ctx context.Context, entry *models.IdeaStatusLog) error
	ListStatusChanges(ctx context.Context, ideaID uint) ([]models.IdeaStatusLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository constructs the audit repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CreateAction(ctx context.Context, entry *models.IdeaActionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) ListActions(ctx context.Context, filter ActionLogFilter) ([]models.IdeaActionLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.IdeaActionLog{})

	if filter.IdeaID != nil {
		query = query.Where("idea_id = ?", *filter.IdeaID)
	}

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entries []models.IdeaActionLog
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *auditRepository) CreateStatusChange(ctx context.Context, entry *models.IdeaStatusLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) ListStatusChanges(ctx context.Context, ideaID uint) ([]models.IdeaStatusLog, error) {
	var entries []models.IdeaStatusLog
	err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/search"
)

// IdeaPage bounds a search result set.
type IdeaPage struct {
	Page     int
	PageSize int
}

// IdeaRepository persists innovation ideas.
type IdeaRepository interface {
	Create(ctx context.Context, idea *models.Idea) error
	Update(ctx context.Context, idea *models.Idea) error
	GetByID(ctx context.Context, id uint) (models.Idea, error)
	ListDrafts(ctx context.Context, submitterID uint) ([]models.Idea, error)
	Search(ctx context.Context, filters search.Filters, page IdeaPage) ([]models.Idea, int64, error)
	CountSubmittedInYear(ctx context.Context, year int) (int64, error)
	CountGroupedBy(ctx context.Context, column string) (map[string]int64, error)
	TopByScore(ctx context.Context, limit int) ([]models.Idea, error)
}

type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository constructs the idea repository.
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

func (r *ideaRepository) Update(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Save(idea).Error
}

func (r *ideaRepository) GetByID(ctx context.Context, id uint) (models.Idea, error) {
	var idea models.Idea
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		First(&idea, id).Error
	return idea, err
}

func (r *ideaRepository) ListDrafts(ctx context.Context, submitterID uint) ([]models.Idea, error) {
	var drafts []models.Idea
	err := r.db.WithContext(ctx).
		Where("submitter_id = ? AND is_draft = ? AND is_active = ?", submitterID, true, true).
		Order("updated_at DESC").
		Find(&drafts).Error
	return drafts, err
}

func (r *ideaRepository) Search(ctx context.Context, filters search.Filters, page IdeaPage) ([]models.Idea, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Idea{}).Where("is_active = ?", true)

	if term := strings.TrimSpace(filters.Term); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(reference_code) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}

	if len(filters.Categories) > 0 {
		query = query.Where("category IN ?", filters.Categories)
	}

	if len(filters.SubmitterIDs) > 0 {
		query = query.Where("submitter_id IN ?", filters.SubmitterIDs)
	}

	if len(filters.EvaluatorIDs) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM evaluator_assignments a WHERE a.idea_id = ideas.id AND a.evaluator_id IN ?)",
			filters.EvaluatorIDs,
		)
	}

	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}

	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if filters.MinScore > search.ScoreMin || filters.MaxScore < search.ScoreMax {
		query = query.Where("avg_score IS NOT NULL AND avg_score >= ? AND avg_score <= ?",
			filters.MinScore, filters.MaxScore)
	}

	if filters.HasAttachments != nil {
		exists := "EXISTS (SELECT 1 FROM idea_attachments att WHERE att.idea_id = ideas.id)"
		if *filters.HasAttachments {
			query = query.Where(exists)
		} else {
			query = query.Where("NOT " + exists)
		}
	}

	if filters.IsUrgent != nil {
		query = query.Where("is_urgent = ?", *filters.IsUrgent)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page.PageSize > 0 {
		current := page.Page
		if current <= 0 {
			current = 1
		}
		query = query.Offset((current - 1) * page.PageSize).Limit(page.PageSize)
	}

	var ideas []models.Idea
	if err := query.Order("created_at DESC").Find(&ideas).Error; err != nil {
		return nil, 0, err
	}

	return ideas, total, nil
}

func (r *ideaRepository) CountSubmittedInYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Idea{}).
		Where("reference_code LIKE ?", referenceCodePrefix(year)+"%").
		Count(&count).Error
	return count, err
}

func referenceCodePrefix(year int) string {
	return fmt.Sprintf("IDEA-%d-", year)
}

// CountGroupedBy tallies active non-draft ideas by one of the whitelisted
// grouping columns.
func (r *ideaRepository) CountGroupedBy(ctx context.Context, column string) (map[string]int64, error) {
	switch column {
	case "status", "category":
	default:
		return nil, fmt.Errorf("unsupported grouping column %q", column)
	}

	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Idea{}).
		Select(column+" AS key, COUNT(*) AS count").
		Where("is_active = ? AND is_draft = ?", true, false).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Count
	}
	return counts, nil
}

func (r *ideaRepository) TopByScore(ctx context.Context, limit int) ([]models.Idea, error) {
	if limit <= 0 {
		limit = 5
	}
	var ideas []models.Idea
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_draft = ? AND avg_score IS NOT NULL", true, false).
		Order("avg_score DESC").
		Limit(limit).
		Find(&ideas).Error
	return ideas, err
}

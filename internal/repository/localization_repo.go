package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afkar-io/afkar-api/internal/models"
)

// LocalizationRepository persists translations and bilingual lookup values.
type LocalizationRepository interface {
	ListTranslations(ctx context.Context, locale string) ([]models.Translation, error)
	UpsertTranslations(ctx context.Context, items []models.Translation) (int64, error)
	ListValues(ctx context.Context, domain string) ([]models.ListOfValue, error)
	UpsertValues(ctx context.Context, items []models.ListOfValue) (int64, error)
}

type localizationRepository struct {
	db *gorm.DB
}

// NewLocalizationRepository constructs the localization repository.
func NewLocalizationRepository(db *gorm.DB) LocalizationRepository {
	return &localizationRepository{db: db}
}

func (r *localizationRepository) ListTranslations(ctx context.Context, locale string) ([]models.Translation, error) {
	var translations []models.Translation
	err := r.db.WithContext(ctx).
		Where("locale = ?", locale).
		Order("key ASC").
		Find(&translations).Error
	return translations, err
}

func (r *localizationRepository) UpsertTranslations(ctx context.Context, items []models.Translation) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "locale"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&items)

	return result.RowsAffected, result.Error
}

func (r *localizationRepository) ListValues(ctx context.Context, domain string) ([]models.ListOfValue, error) {
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if domain != "" {
		query = query.Where("domain = ?", domain)
	}

	var values []models.ListOfValue
	err := query.Order("domain ASC, sort_order ASC").Find(&values).Error
	return values, err
}

func (r *localizationRepository) UpsertValues(ctx context.Context, items []models.ListOfValue) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "domain"}, {Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"label_en", "label_ar", "sort_order", "active", "updated_at"}),
	}).Create(&items)

	return result.RowsAffected, result.Error
}

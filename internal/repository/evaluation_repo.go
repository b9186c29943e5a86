package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/models"
)

// EvaluationRepository persists evaluations and evaluator assignments.
type EvaluationRepository interface {
	CreateEvaluation(ctx context.Context, evaluation *models.Evaluation) error
	UpdateEvaluation(ctx context.Context, evaluation *models.Evaluation) error
	GetEvaluation(ctx context.Context, ideaID, evaluatorID uint) (models.Evaluation, error)
	ListByIdea(ctx context.Context, ideaID uint) ([]models.Evaluation, error)
	ListByEvaluator(ctx context.Context, evaluatorID uint) ([]models.Evaluation, error)

	CreateAssignment(ctx context.Context, assignment *models.EvaluatorAssignment) error
	GetAssignment(ctx context.Context, ideaID, evaluatorID uint) (models.EvaluatorAssignment, error)
	ListAssignmentsByIdea(ctx context.Context, ideaID uint) ([]models.EvaluatorAssignment, error)
	ListAssignmentsByEvaluator(ctx context.Context, evaluatorID uint) ([]models.EvaluatorAssignment, error)
	MarkAssignmentCompleted(ctx context.Context, ideaID, evaluatorID uint) error
	CountAssignments(ctx context.Context, status string) (int64, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs the evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) CreateEvaluation(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) UpdateEvaluation(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Save(evaluation).Error
}

func (r *evaluationRepository) GetEvaluation(ctx context.Context, ideaID, evaluatorID uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.WithContext(ctx).
		Where("idea_id = ? AND evaluator_id = ?", ideaID, evaluatorID).
		First(&evaluation).Error
	return evaluation, err
}

func (r *evaluationRepository) ListByIdea(ctx context.Context, ideaID uint) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID uint) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.WithContext(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Order("updated_at DESC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepository) CreateAssignment(ctx context.Context, assignment *models.EvaluatorAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *evaluationRepository) GetAssignment(ctx context.Context, ideaID, evaluatorID uint) (models.EvaluatorAssignment, error) {
	var assignment models.EvaluatorAssignment
	err := r.db.WithContext(ctx).
		Where("idea_id = ? AND evaluator_id = ?", ideaID, evaluatorID).
		First(&assignment).Error
	return assignment, err
}

func (r *evaluationRepository) ListAssignmentsByIdea(ctx context.Context, ideaID uint) ([]models.EvaluatorAssignment, error) {
	var assignments []models.EvaluatorAssignment
	err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *evaluationRepository) ListAssignmentsByEvaluator(ctx context.Context, evaluatorID uint) ([]models.EvaluatorAssignment, error) {
	var assignments []models.EvaluatorAssignment
	err := r.db.WithContext(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *evaluationRepository) MarkAssignmentCompleted(ctx context.Context, ideaID, evaluatorID uint) error {
	return r.db.WithContext(ctx).Model(&models.EvaluatorAssignment{}).
		Where("idea_id = ? AND evaluator_id = ?", ideaID, evaluatorID).
		Update("status", models.EvaluationStatusCompleted).Error
}

// CountAssignments counts assignments, optionally narrowed to one status.
func (r *evaluationRepository) CountAssignments(ctx context.Context, status string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EvaluatorAssignment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

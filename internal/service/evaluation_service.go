package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/observability"
	"github.com/afkar-io/afkar-api/internal/repository"
)

var (
	// ErrNotAssigned indicates the evaluator has no assignment for the idea.
	ErrNotAssigned = errors.New("evaluator is not assigned to this idea")
	// ErrEvaluationCompleted indicates the evaluation was already finalised.
	ErrEvaluationCompleted = errors.New("evaluation already completed")
)

// EvaluationService exposes evaluator review use cases.
type EvaluationService interface {
	SaveDraft(ctx context.Context, ideaID, evaluatorID uint, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error)
	Submit(ctx context.Context, ideaID, evaluatorID uint, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error)
	ListMine(ctx context.Context, evaluatorID uint) ([]dto.EvaluationResponse, error)
	Summary(ctx context.Context, ideaID uint) (dto.EvaluationSummaryResponse, error)
	Assign(ctx context.Context, ideaID, evaluatorID uint, evaluationType string) error
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	ideas       repository.IdeaRepository
	audit       AuditAppender
	notifier    Notifier
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEvaluationService builds the evaluation service.
func NewEvaluationService(evaluations repository.EvaluationRepository, ideas repository.IdeaRepository, audit AuditAppender, notifier Notifier, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		evaluations: evaluations,
		ideas:       ideas,
		audit:       audit,
		notifier:    notifier,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
		now:         time.Now,
	}
}

func (s *evaluationService) Assign(ctx context.Context, ideaID, evaluatorID uint, evaluationType string) error {
	if _, err := s.ideas.GetByID(ctx, ideaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdeaNotFound
		}
		return err
	}

	assignment := models.EvaluatorAssignment{
		IdeaID:         ideaID,
		EvaluatorID:    evaluatorID,
		EvaluationType: evaluationType,
		Status:         models.EvaluationStatusPending,
	}
	if err := s.evaluations.CreateAssignment(ctx, &assignment); err != nil {
		return err
	}

	s.logger.Info().Uint("idea_id", ideaID).Uint("evaluator_id", evaluatorID).Msg("evaluator assigned")
	return nil
}

// SaveDraft stores work-in-progress scores without completing the evaluation.
func (s *evaluationService) SaveDraft(ctx context.Context, ideaID, evaluatorID uint, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error) {
	evaluation, err := s.upsert(ctx, ideaID, evaluatorID, payload, false)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}
	return dto.NewEvaluationResponse(evaluation), nil
}

// Submit finalises the evaluation, marks the assignment completed and
// recomputes the idea's average score. Audit and notification side effects
// are best-effort.
func (s *evaluationService) Submit(ctx context.Context, ideaID, evaluatorID uint, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error) {
	evaluation, err := s.upsert(ctx, ideaID, evaluatorID, payload, true)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	if err := s.evaluations.MarkAssignmentCompleted(ctx, ideaID, evaluatorID); err != nil {
		s.logger.Warn().Err(err).Uint("idea_id", ideaID).Msg("failed to mark assignment completed")
	}

	if err := s.recomputeAverage(ctx, ideaID); err != nil {
		s.logger.Warn().Err(err).Uint("idea_id", ideaID).Msg("failed to recompute average score")
	}

	if s.audit != nil {
		if err := s.audit.Append(ctx, AuditEntry{
			IdeaID:    ideaID,
			ActorID:   evaluatorID,
			ActorRole: models.RoleEvaluator,
			Action:    "evaluation.submitted",
		}); err != nil {
			s.logger.Warn().Err(err).Uint("idea_id", ideaID).Msg("audit append failed")
		}
	}

	observability.EvaluationsSubmitted().Inc()
	s.logger.Info().Uint("idea_id", ideaID).Uint("evaluator_id", evaluatorID).Msg("evaluation submitted")

	return dto.NewEvaluationResponse(evaluation), nil
}

func (s *evaluationService) ListMine(ctx context.Context, evaluatorID uint) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.evaluations.ListByEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}
	return dto.NewEvaluationResponseSlice(evaluations), nil
}

// Summary aggregates every evaluation recorded for one idea. Pending
// evaluations are listed but excluded from score averages and the
// recommendation tally. AvgScores stays nil when nothing is scored yet.
func (s *evaluationService) Summary(ctx context.Context, ideaID uint) (dto.EvaluationSummaryResponse, error) {
	assignments, err := s.evaluations.ListAssignmentsByIdea(ctx, ideaID)
	if err != nil {
		return dto.EvaluationSummaryResponse{}, err
	}

	evaluations, err := s.evaluations.ListByIdea(ctx, ideaID)
	if err != nil {
		return dto.EvaluationSummaryResponse{}, err
	}

	completed := 0
	for _, evaluation := range evaluations {
		if evaluation.Completed() {
			completed++
		}
	}

	total := len(assignments)
	if total < completed {
		total = completed
	}

	return dto.EvaluationSummaryResponse{
		IdeaID:               ideaID,
		Total:                total,
		Completed:            completed,
		AvgScores:            AverageScores(evaluations),
		Consensus:            Consensus(evaluations),
		TotalRecommendations: TotalRecommendations(evaluations),
		Evaluations:          dto.NewEvaluationResponseSlice(evaluations),
	}, nil
}

func (s *evaluationService) upsert(ctx context.Context, ideaID, evaluatorID uint, payload dto.EvaluationSubmitRequest, complete bool) (models.Evaluation, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Evaluation{}, err
	}

	assignment, err := s.evaluations.GetAssignment(ctx, ideaID, evaluatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Evaluation{}, ErrNotAssigned
		}
		return models.Evaluation{}, err
	}

	evaluation, err := s.evaluations.GetEvaluation(ctx, ideaID, evaluatorID)
	existing := true
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Evaluation{}, err
		}
		existing = false
		evaluation = models.Evaluation{
			IdeaID:         ideaID,
			EvaluatorID:    evaluatorID,
			EvaluationType: assignment.EvaluationType,
			Status:         models.EvaluationStatusPending,
		}
	}

	if evaluation.Completed() {
		return models.Evaluation{}, ErrEvaluationCompleted
	}

	evaluation.Overall = payload.Overall
	evaluation.Feasibility = payload.Feasibility
	evaluation.Impact = payload.Impact
	evaluation.Innovation = payload.Innovation
	evaluation.Enrichment = payload.Enrichment
	evaluation.Feedback = s.sanitizer.Sanitize(payload.Feedback)
	evaluation.Recommendation = payload.Recommendation

	if complete {
		now := s.now()
		evaluation.Status = models.EvaluationStatusCompleted
		evaluation.SubmittedAt = &now
	}

	if existing {
		err = s.evaluations.UpdateEvaluation(ctx, &evaluation)
	} else {
		err = s.evaluations.CreateEvaluation(ctx, &evaluation)
	}
	if err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

// recomputeAverage refreshes the idea's average score: the mean of overall
// scores across completed evaluations, nil while none are completed.
func (s *evaluationService) recomputeAverage(ctx context.Context, ideaID uint) error {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}

	evaluations, err := s.evaluations.ListByIdea(ctx, ideaID)
	if err != nil {
		return err
	}

	var sum float64
	var count int
	for _, evaluation := range evaluations {
		if evaluation.Completed() && evaluation.Overall != nil {
			sum += *evaluation.Overall
			count++
		}
	}

	if count == 0 {
		idea.AvgScore = nil
	} else {
		average := sum / float64(count)
		idea.AvgScore = &average
	}

	return s.ideas.Update(ctx, &idea)
}

// ComprehensiveScore weights per-criterion averages into one 0..10 figure.
// Feasibility and impact carry more weight than the remaining criteria.
func ComprehensiveScore(scores *dto.AverageScores) (float64, error) {
	if scores == nil {
		return 0, fmt.Errorf("no scores recorded")
	}

	weighted := scores.Feasibility*0.3 + scores.Impact*0.3 +
		scores.Innovation*0.2 + scores.Enrichment*0.1 + scores.Overall*0.1
	return weighted, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/observability"
	"github.com/afkar-io/afkar-api/internal/repository"
	"github.com/afkar-io/afkar-api/internal/search"
)

var (
	// ErrIdeaNotFound indicates the requested idea does not exist or is inactive.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrNotIdeaOwner indicates the actor does not own the idea.
	ErrNotIdeaOwner = errors.New("idea belongs to another submitter")
	// ErrNotDraft indicates the idea already left the draft state.
	ErrNotDraft = errors.New("idea is not an editable draft")
)

// AuditAppender records audit entries for idea actions.
type AuditAppender interface {
	Append(ctx context.Context, entry AuditEntry) error
}

// AuditTrail extends AuditAppender with status transition history.
type AuditTrail interface {
	AuditAppender
	RecordStatusChange(ctx context.Context, ideaID uint, from, to string, changedBy uint) error
}

// Notifier publishes user-facing notifications.
type Notifier interface {
	Publish(ctx context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error)
}

// IdeaService exposes the idea and draft lifecycle use cases.
type IdeaService interface {
	CreateDraft(ctx context.Context, submitterID uint, payload dto.IdeaCreateRequest) (dto.IdeaResponse, error)
	UpdateDraft(ctx context.Context, ideaID, actorID uint, payload dto.IdeaUpdateRequest) (dto.IdeaResponse, error)
	Get(ctx context.Context, ideaID uint) (dto.IdeaResponse, error)
	ListDrafts(ctx context.Context, submitterID uint) ([]dto.IdeaResponse, error)
	Submit(ctx context.Context, ideaID, actorID uint) (dto.IdeaResponse, error)
	Discard(ctx context.Context, ideaID, actorID uint) error
	Search(ctx context.Context, filters search.Filters, page repository.IdeaPage) (dto.IdeaListResponse, error)
	AddComment(ctx context.Context, ideaID, authorID uint, payload dto.CommentCreateRequest) (dto.CommentResponse, error)
	ListComments(ctx context.Context, ideaID uint) ([]dto.CommentResponse, error)
}

type ideaService struct {
	ideas     repository.IdeaRepository
	comments  repository.CommentRepository
	audit     AuditTrail
	notifier  Notifier
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewIdeaService builds the idea service.
func NewIdeaService(ideas repository.IdeaRepository, comments repository.CommentRepository, audit AuditTrail, notifier Notifier, validate *validator.Validate, logger zerolog.Logger) IdeaService {
	return &ideaService{
		ideas:     ideas,
		comments:  comments,
		audit:     audit,
		notifier:  notifier,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "idea_service").Logger(),
		now:       time.Now,
	}
}

func (s *ideaService) CreateDraft(ctx context.Context, submitterID uint, payload dto.IdeaCreateRequest) (dto.IdeaResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.IdeaResponse{}, err
	}

	idea := models.Idea{
		Title:       strings.TrimSpace(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		Category:    payload.Category,
		Status:      models.IdeaStatusDraft,
		SubmitterID: submitterID,
		IsDraft:     true,
		IsActive:    true,
		IsUrgent:    payload.IsUrgent,
	}

	if err := s.ideas.Create(ctx, &idea); err != nil {
		return dto.IdeaResponse{}, err
	}

	s.logger.Info().Uint("idea_id", idea.ID).Uint("submitter_id", submitterID).Msg("draft created")

	return dto.NewIdeaResponse(idea), nil
}

func (s *ideaService) UpdateDraft(ctx context.Context, ideaID, actorID uint, payload dto.IdeaUpdateRequest) (dto.IdeaResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.IdeaResponse{}, err
	}

	idea, err := s.ownedDraft(ctx, ideaID, actorID)
	if err != nil {
		return dto.IdeaResponse{}, err
	}

	if payload.Title != nil {
		idea.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		idea.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.Category != nil {
		idea.Category = *payload.Category
	}
	if payload.IsUrgent != nil {
		idea.IsUrgent = *payload.IsUrgent
	}

	if err := s.ideas.Update(ctx, &idea); err != nil {
		return dto.IdeaResponse{}, err
	}

	return dto.NewIdeaResponse(idea), nil
}

func (s *ideaService) Get(ctx context.Context, ideaID uint) (dto.IdeaResponse, error) {
	idea, err := s.activeIdea(ctx, ideaID)
	if err != nil {
		return dto.IdeaResponse{}, err
	}

	return dto.NewIdeaResponse(idea), nil
}

func (s *ideaService) ListDrafts(ctx context.Context, submitterID uint) ([]dto.IdeaResponse, error) {
	drafts, err := s.ideas.ListDrafts(ctx, submitterID)
	if err != nil {
		return nil, err
	}

	return dto.NewIdeaResponseSlice(drafts), nil
}

// Submit moves a draft to the submitted state. The audit append is
// fire-and-forget: a failed append is logged but never rolls back the
// transition. No idempotency guard exists at this layer.
func (s *ideaService) Submit(ctx context.Context, ideaID, actorID uint) (dto.IdeaResponse, error) {
	idea, err := s.ownedDraft(ctx, ideaID, actorID)
	if err != nil {
		return dto.IdeaResponse{}, err
	}

	now := s.now()
	previousStatus := idea.Status
	idea.Status = models.IdeaStatusSubmitted
	idea.IsDraft = false
	idea.SubmittedAt = &now

	if idea.ReferenceCode == "" {
		code, err := s.nextReferenceCode(ctx, now)
		if err != nil {
			return dto.IdeaResponse{}, err
		}
		idea.ReferenceCode = code
	}

	if err := s.ideas.Update(ctx, &idea); err != nil {
		return dto.IdeaResponse{}, err
	}

	s.appendAudit(ctx, AuditEntry{
		IdeaID:   idea.ID,
		ActorID:  actorID,
		Action:   "idea.submitted",
		Detail:   idea.ReferenceCode,
		Metadata: map[string]interface{}{"from_status": previousStatus, "to_status": idea.Status},
	})
	if s.audit != nil {
		if err := s.audit.RecordStatusChange(ctx, idea.ID, previousStatus, idea.Status, actorID); err != nil {
			s.logger.Warn().Err(err).Uint("idea_id", idea.ID).Msg("status log append failed")
		}
	}
	s.notifySubmitter(ctx, idea, "idea_submitted",
		fmt.Sprintf("Your idea %s was submitted for review.", idea.ReferenceCode))

	observability.IdeasSubmittedTotal().WithLabelValues(idea.Category).Inc()
	s.logger.Info().Uint("idea_id", idea.ID).Str("reference_code", idea.ReferenceCode).Msg("idea submitted")

	return dto.NewIdeaResponse(idea), nil
}

// Discard soft-deletes a draft, leaving status and draft flag untouched so the
// record stays auditable. Same fire-and-forget audit caveat as Submit.
func (s *ideaService) Discard(ctx context.Context, ideaID, actorID uint) error {
	idea, err := s.ownedDraft(ctx, ideaID, actorID)
	if err != nil {
		return err
	}

	idea.IsActive = false
	if err := s.ideas.Update(ctx, &idea); err != nil {
		return err
	}

	s.appendAudit(ctx, AuditEntry{
		IdeaID:  idea.ID,
		ActorID: actorID,
		Action:  "idea.discarded",
	})

	s.logger.Info().Uint("idea_id", idea.ID).Msg("draft discarded")
	return nil
}

func (s *ideaService) Search(ctx context.Context, filters search.Filters, page repository.IdeaPage) (dto.IdeaListResponse, error) {
	observability.SearchRequestsTotal().Inc()

	ideas, total, err := s.ideas.Search(ctx, filters, page)
	if err != nil {
		return dto.IdeaListResponse{}, err
	}

	pagination := dto.PaginationMeta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: total,
		TotalPages: 1,
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}
	if page.PageSize > 0 {
		pagination.TotalPages = int((total + int64(page.PageSize) - 1) / int64(page.PageSize))
	}

	return dto.IdeaListResponse{Items: dto.NewIdeaResponseSlice(ideas), Pagination: pagination}, nil
}

func (s *ideaService) AddComment(ctx context.Context, ideaID, authorID uint, payload dto.CommentCreateRequest) (dto.CommentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CommentResponse{}, err
	}

	if _, err := s.activeIdea(ctx, ideaID); err != nil {
		return dto.CommentResponse{}, err
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(payload.Body))
	if body == "" {
		return dto.CommentResponse{}, fmt.Errorf("comment body empty after sanitization")
	}

	comment := models.IdeaComment{IdeaID: ideaID, AuthorID: authorID, Body: body}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}

	return dto.NewCommentResponse(comment), nil
}

func (s *ideaService) ListComments(ctx context.Context, ideaID uint) ([]dto.CommentResponse, error) {
	if _, err := s.activeIdea(ctx, ideaID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.NewCommentResponse(comment))
	}
	return responses, nil
}

func (s *ideaService) activeIdea(ctx context.Context, ideaID uint) (models.Idea, error) {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Idea{}, ErrIdeaNotFound
		}
		return models.Idea{}, err
	}
	if !idea.IsActive {
		return models.Idea{}, ErrIdeaNotFound
	}
	return idea, nil
}

func (s *ideaService) ownedDraft(ctx context.Context, ideaID, actorID uint) (models.Idea, error) {
	idea, err := s.activeIdea(ctx, ideaID)
	if err != nil {
		return models.Idea{}, err
	}
	if idea.SubmitterID != actorID {
		return models.Idea{}, ErrNotIdeaOwner
	}
	if !idea.IsDraft {
		return models.Idea{}, ErrNotDraft
	}
	return idea, nil
}

func (s *ideaService) nextReferenceCode(ctx context.Context, now time.Time) (string, error) {
	year := now.Year()
	count, err := s.ideas.CountSubmittedInYear(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("IDEA-%d-%05d", year, count+1), nil
}

func (s *ideaService) appendAudit(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Uint("idea_id", entry.IdeaID).Msg("audit append failed")
	}
}

func (s *ideaService) notifySubmitter(ctx context.Context, idea models.Idea, notificationType, message string) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Publish(ctx, dto.NotificationCreateRequest{
		UserID:  idea.SubmitterID,
		Type:    notificationType,
		Message: message,
	})
	if err != nil {
		s.logger.Warn().Err(err).Uint("idea_id", idea.ID).Msg("notification publish failed")
	}
}

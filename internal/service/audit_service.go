package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

// AuditEntry captures the details required to persist one audit record.
type AuditEntry struct {
	IdeaID    uint
	ActorID   uint
	ActorRole string
	Action    string
	Detail    string
	Metadata  map[string]interface{}
}

// AuditService records and queries the idea action trail.
type AuditService interface {
	AuditAppender
	List(ctx context.Context, req dto.ActionLogListRequest) (dto.ActionLogListResponse, error)
	RecordStatusChange(ctx context.Context, ideaID uint, from, to string, changedBy uint) error
}

type auditService struct {
	repo   repository.AuditRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit service.
func NewAuditService(repo repository.AuditRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

// Append persists one audit entry. Callers treat failures as non-fatal; the
// primary state change is never rolled back on a failed append.
func (s *auditService) Append(ctx context.Context, entry AuditEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("action is required")
	}

	role := strings.ToLower(strings.TrimSpace(entry.ActorRole))
	if role == "" {
		role = models.RoleSubmitter
	}

	model := models.IdeaActionLog{
		IdeaID:    entry.IdeaID,
		ActorID:   entry.ActorID,
		ActorRole: role,
		Action:    strings.ToLower(strings.TrimSpace(entry.Action)),
		Detail:    entry.Detail,
		Metadata:  sanitizeMetadata(entry.Metadata),
	}

	if err := s.repo.CreateAction(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", model.Action).Msg("failed to persist audit entry")
		return err
	}

	return nil
}

func (s *auditService) List(ctx context.Context, req dto.ActionLogListRequest) (dto.ActionLogListResponse, error) {
	filter := repository.ActionLogFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Action:   strings.TrimSpace(req.Action),
	}
	if req.IdeaID > 0 {
		filter.IdeaID = &req.IdeaID
	}
	if req.ActorID > 0 {
		filter.ActorID = &req.ActorID
	}

	entries, total, err := s.repo.ListActions(ctx, filter)
	if err != nil {
		return dto.ActionLogListResponse{}, err
	}

	responses := make([]dto.ActionLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActionLogResponse(entry))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.ActionLogListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *auditService) RecordStatusChange(ctx context.Context, ideaID uint, from, to string, changedBy uint) error {
	entry := models.IdeaStatusLog{
		IdeaID:     ideaID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
	}
	return s.repo.CreateStatusChange(ctx, &entry)
}

func sanitizeMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}

	sanitized := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "email") || strings.Contains(lower, "token") || strings.Contains(lower, "password") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

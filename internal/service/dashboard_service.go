package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/observability"
	"github.com/afkar-io/afkar-api/internal/repository"
)

const dashboardCacheKey = "dashboard:overview"

// DashboardService produces aggregated portfolio metrics for management.
type DashboardService interface {
	Overview(ctx context.Context) (dto.DashboardOverviewResponse, error)
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	ideas       repository.IdeaRepository
	evaluations repository.EvaluationRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(ideas repository.IdeaRepository, evaluations repository.EvaluationRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		ideas:       ideas,
		evaluations: evaluations,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Overview(ctx context.Context) (dto.DashboardOverviewResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var response dto.DashboardOverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard cache hit")
				observability.DashboardCacheTotal().WithLabelValues("hit").Inc()
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}
	observability.DashboardCacheTotal().WithLabelValues("miss").Inc()

	byStatus, err := s.ideas.CountGroupedBy(ctx, "status")
	if err != nil {
		return dto.DashboardOverviewResponse{}, err
	}

	byCategory, err := s.ideas.CountGroupedBy(ctx, "category")
	if err != nil {
		return dto.DashboardOverviewResponse{}, err
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	totalAssignments, err := s.evaluations.CountAssignments(ctx, "")
	if err != nil {
		return dto.DashboardOverviewResponse{}, err
	}
	completedAssignments, err := s.evaluations.CountAssignments(ctx, models.EvaluationStatusCompleted)
	if err != nil {
		return dto.DashboardOverviewResponse{}, err
	}

	completion := 0.0
	if totalAssignments > 0 {
		completion = float64(completedAssignments) / float64(totalAssignments) * 100
	}

	top, err := s.ideas.TopByScore(ctx, 5)
	if err != nil {
		return dto.DashboardOverviewResponse{}, err
	}

	response := dto.DashboardOverviewResponse{
		TotalIdeas:           total,
		ByStatus:             byStatus,
		ByCategory:           byCategory,
		EvaluationCompletion: completion,
		TopIdeas:             dto.NewIdeaResponseSlice(top),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// Invalidate drops the cached overview so the next read reflects fresh state.
// Callers treat a failed delete as non-fatal; the TTL still bounds staleness.
func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}

package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

func TestDashboardOverviewAggregationAndCaching(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := setupServiceDB(t)
	ideas := repository.NewIdeaRepository(db)
	evaluations := repository.NewEvaluationRepository(db)
	ctx := context.Background()

	fixtures := []models.Idea{
		{Title: "A", Description: "d", Category: "process", Status: models.IdeaStatusSubmitted, SubmitterID: 1, IsActive: true, AvgScore: floatPtr(8)},
		{Title: "B", Description: "d", Category: "process", Status: models.IdeaStatusApproved, SubmitterID: 1, IsActive: true, AvgScore: floatPtr(6)},
		{Title: "C", Description: "d", Category: "product", Status: models.IdeaStatusSubmitted, SubmitterID: 2, IsActive: true},
		{Title: "Draft", Description: "d", Category: "product", Status: models.IdeaStatusDraft, SubmitterID: 2, IsDraft: true, IsActive: true},
		{Title: "Gone", Description: "d", Category: "product", Status: models.IdeaStatusSubmitted, SubmitterID: 2, IsActive: false},
	}
	for i := range fixtures {
		require.NoError(t, ideas.Create(ctx, &fixtures[i]))
	}

	require.NoError(t, evaluations.CreateAssignment(ctx, &models.EvaluatorAssignment{
		IdeaID: fixtures[0].ID, EvaluatorID: 42, EvaluationType: models.EvaluationTypeTechnology, Status: models.EvaluationStatusCompleted,
	}))
	require.NoError(t, evaluations.CreateAssignment(ctx, &models.EvaluatorAssignment{
		IdeaID: fixtures[1].ID, EvaluatorID: 42, EvaluationType: models.EvaluationTypeFinance, Status: models.EvaluationStatusPending,
	}))

	svc := NewDashboardService(ideas, evaluations, redisClient, time.Minute, testLogger())

	first, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), first.TotalIdeas)
	require.Equal(t, int64(2), first.ByStatus[models.IdeaStatusSubmitted])
	require.Equal(t, int64(1), first.ByStatus[models.IdeaStatusApproved])
	require.Equal(t, int64(2), first.ByCategory["process"])
	require.InDelta(t, 50.0, first.EvaluationCompletion, 0.001)
	require.Len(t, first.TopIdeas, 2)
	require.Equal(t, fixtures[0].ID, first.TopIdeas[0].ID)
	require.False(t, first.CacheHit)

	// A write after the first read is invisible until the cache expires.
	require.NoError(t, db.Model(&fixtures[2]).Update("status", models.IdeaStatusApproved).Error)

	second, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.ByStatus, second.ByStatus)

	svc.Invalidate(ctx)

	third, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.False(t, third.CacheHit)
	require.Equal(t, int64(2), third.ByStatus[models.IdeaStatusApproved])
}

func TestDashboardOverviewWithoutCache(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDashboardService(repository.NewIdeaRepository(db), repository.NewEvaluationRepository(db), nil, time.Minute, testLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Zero(t, overview.TotalIdeas)
	require.Zero(t, overview.EvaluationCompletion)
	require.Empty(t, overview.TopIdeas)
}

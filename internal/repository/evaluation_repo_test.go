package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/models"
)

func TestEvaluationRepositoryAssignmentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEvaluationRepository(db)
	ctx := context.Background()

	assignment := models.EvaluatorAssignment{IdeaID: 1, EvaluatorID: 5, EvaluationType: models.EvaluationTypeTechnology, Status: models.EvaluationStatusPending}
	require.NoError(t, repo.CreateAssignment(ctx, &assignment))

	fetched, err := repo.GetAssignment(ctx, 1, 5)
	require.NoError(t, err)
	require.Equal(t, models.EvaluationStatusPending, fetched.Status)

	require.NoError(t, repo.MarkAssignmentCompleted(ctx, 1, 5))

	fetched, err = repo.GetAssignment(ctx, 1, 5)
	require.NoError(t, err)
	require.Equal(t, models.EvaluationStatusCompleted, fetched.Status)
}

func TestEvaluationRepositoryListByIdea(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEvaluationRepository(db)
	ctx := context.Background()

	score := 8.0
	first := models.Evaluation{IdeaID: 2, EvaluatorID: 5, EvaluationType: models.EvaluationTypeFinance, Status: models.EvaluationStatusCompleted, Overall: &score}
	second := models.Evaluation{IdeaID: 2, EvaluatorID: 6, EvaluationType: models.EvaluationTypeCommercial, Status: models.EvaluationStatusPending}
	unrelated := models.Evaluation{IdeaID: 3, EvaluatorID: 5, EvaluationType: models.EvaluationTypeTechnology}
	require.NoError(t, repo.CreateEvaluation(ctx, &first))
	require.NoError(t, repo.CreateEvaluation(ctx, &second))
	require.NoError(t, repo.CreateEvaluation(ctx, &unrelated))

	evaluations, err := repo.ListByIdea(ctx, 2)
	require.NoError(t, err)
	require.Len(t, evaluations, 2)
}

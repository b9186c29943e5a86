package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
)

func completedEvaluation(recommendation string, overall float64) models.Evaluation {
	return models.Evaluation{
		Status:         models.EvaluationStatusCompleted,
		Overall:        floatPtr(overall),
		Recommendation: strPtr(recommendation),
	}
}

func TestConsensusExcludesPendingAndNilRecommendations(t *testing.T) {
	evaluations := []models.Evaluation{
		completedEvaluation(models.RecommendationApprove, 8),
		completedEvaluation(models.RecommendationApprove, 7),
		{Status: models.EvaluationStatusPending, Recommendation: strPtr(models.RecommendationReject)},
		{Status: models.EvaluationStatusCompleted, Recommendation: nil},
	}

	consensus := Consensus(evaluations)
	require.Equal(t, map[string]int{models.RecommendationApprove: 2}, consensus)
	require.Equal(t, 2, TotalRecommendations(evaluations))
}

func TestConsensusPercentZeroDenominator(t *testing.T) {
	require.Equal(t, 0, ConsensusPercent(map[string]int{}, models.RecommendationApprove, 0))
	require.Equal(t, 50, ConsensusPercent(map[string]int{models.RecommendationApprove: 1}, models.RecommendationApprove, 2))
}

func TestAverageScoresNilWhenNothingScored(t *testing.T) {
	require.Nil(t, AverageScores(nil))
	require.Nil(t, AverageScores([]models.Evaluation{
		{Status: models.EvaluationStatusPending, Overall: floatPtr(9)},
		{Status: models.EvaluationStatusCompleted},
	}))
}

func TestAverageScoresSkipsNilCriteria(t *testing.T) {
	evaluations := []models.Evaluation{
		{
			Status:      models.EvaluationStatusCompleted,
			Overall:     floatPtr(8),
			Feasibility: floatPtr(6),
		},
		{
			Status:  models.EvaluationStatusCompleted,
			Overall: floatPtr(6),
		},
	}

	scores := AverageScores(evaluations)
	require.NotNil(t, scores)
	require.InDelta(t, 7.0, scores.Overall, 0.001)
	// Only one evaluation scored feasibility; nil scores never dilute averages.
	require.InDelta(t, 6.0, scores.Feasibility, 0.001)
	require.Zero(t, scores.Impact)
}

func TestMetaForRecommendationFallback(t *testing.T) {
	meta := MetaForRecommendation(models.RecommendationApprove)
	require.Equal(t, "Approve", meta.Label)

	unknown := MetaForRecommendation("escalate")
	require.Equal(t, "Unknown", unknown.Label)
	require.Equal(t, "circle", unknown.Icon)
	require.Equal(t, "gray", unknown.Color)
}

func TestIconForEvaluationTypeFallback(t *testing.T) {
	require.Equal(t, "cpu", IconForEvaluationType(models.EvaluationTypeTechnology))
	require.Equal(t, "clipboard", IconForEvaluationType("legal"))
}

func TestComprehensiveScoreWeighting(t *testing.T) {
	_, err := ComprehensiveScore(nil)
	require.Error(t, err)

	scores := dto.AverageScores{Overall: 10, Feasibility: 10, Impact: 10, Innovation: 10, Enrichment: 10}
	score, err := ComprehensiveScore(&scores)
	require.NoError(t, err)
	require.InDelta(t, 10.0, score, 0.001)
}

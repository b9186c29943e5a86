package service

import (
	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
)

// Consensus tallies recommendation categories over completed evaluations.
// Evaluations without a recommendation are excluded, never counted as a
// category of their own.
func Consensus(evaluations []models.Evaluation) map[string]int {
	consensus := make(map[string]int)
	for _, evaluation := range evaluations {
		if !evaluation.Completed() || evaluation.Recommendation == nil {
			continue
		}
		consensus[*evaluation.Recommendation]++
	}
	return consensus
}

// TotalRecommendations counts completed evaluations carrying a recommendation.
// It is the denominator for consensus percentages.
func TotalRecommendations(evaluations []models.Evaluation) int {
	total := 0
	for _, evaluation := range evaluations {
		if evaluation.Completed() && evaluation.Recommendation != nil {
			total++
		}
	}
	return total
}

// ConsensusPercent returns the share of recommendations falling in the given
// category, in whole percent. A zero denominator yields 0, never NaN.
func ConsensusPercent(consensus map[string]int, category string, totalRecommendations int) int {
	if totalRecommendations <= 0 {
		return 0
	}
	return consensus[category] * 100 / totalRecommendations
}

// AverageScores computes per-criterion averages over completed evaluations,
// skipping nil scores per criterion. It returns nil when no completed
// evaluation carries any score, so callers can suppress the score panel
// instead of rendering zeros.
func AverageScores(evaluations []models.Evaluation) *dto.AverageScores {
	type accumulator struct {
		sum   float64
		count int
	}
	var overall, feasibility, impact, innovation, enrichment accumulator

	add := func(acc *accumulator, score *float64) {
		if score != nil {
			acc.sum += *score
			acc.count++
		}
	}

	for _, evaluation := range evaluations {
		if !evaluation.Completed() {
			continue
		}
		add(&overall, evaluation.Overall)
		add(&feasibility, evaluation.Feasibility)
		add(&impact, evaluation.Impact)
		add(&innovation, evaluation.Innovation)
		add(&enrichment, evaluation.Enrichment)
	}

	if overall.count == 0 && feasibility.count == 0 && impact.count == 0 &&
		innovation.count == 0 && enrichment.count == 0 {
		return nil
	}

	average := func(acc accumulator) float64 {
		if acc.count == 0 {
			return 0
		}
		return acc.sum / float64(acc.count)
	}

	return &dto.AverageScores{
		Overall:     average(overall),
		Feasibility: average(feasibility),
		Impact:      average(impact),
		Innovation:  average(innovation),
		Enrichment:  average(enrichment),
	}
}

var recommendationMeta = map[string]dto.RecommendationMeta{
	models.RecommendationApprove:         {Label: "Approve", Icon: "check-circle", Color: "green"},
	models.RecommendationApproveModified: {Label: "Approve with modifications", Icon: "edit-circle", Color: "amber"},
	models.RecommendationNeedsMoreInfo:   {Label: "Needs more info", Icon: "question-circle", Color: "blue"},
	models.RecommendationReject:          {Label: "Reject", Icon: "x-circle", Color: "red"},
}

var defaultRecommendationMeta = dto.RecommendationMeta{Label: "Unknown", Icon: "circle", Color: "gray"}

// MetaForRecommendation resolves presentation metadata for a recommendation
// category, falling back to a neutral default for unknown categories.
func MetaForRecommendation(category string) dto.RecommendationMeta {
	if meta, ok := recommendationMeta[category]; ok {
		return meta
	}
	return defaultRecommendationMeta
}

var evaluationTypeIcons = map[string]string{
	models.EvaluationTypeTechnology: "cpu",
	models.EvaluationTypeFinance:    "banknote",
	models.EvaluationTypeCommercial: "storefront",
}

// IconForEvaluationType resolves the icon for an evaluation track, falling
// back to a neutral default for unknown types.
func IconForEvaluationType(evaluationType string) string {
	if icon, ok := evaluationTypeIcons[evaluationType]; ok {
		return icon
	}
	return "clipboard"
}

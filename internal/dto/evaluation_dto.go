package dto

import (
	"time"

	"github.com/afkar-io/afkar-api/internal/models"
)

// EvaluationSubmitRequest describes an evaluator's scored assessment payload.
type EvaluationSubmitRequest struct {
	Overall        *float64 `json:"overall_score" validate:"omitempty,gte=0,lte=10"`
	Feasibility    *float64 `json:"feasibility_score" validate:"omitempty,gte=0,lte=10"`
	Impact         *float64 `json:"impact_score" validate:"omitempty,gte=0,lte=10"`
	Innovation     *float64 `json:"innovation_score" validate:"omitempty,gte=0,lte=10"`
	Enrichment     *float64 `json:"enrichment_score" validate:"omitempty,gte=0,lte=10"`
	Feedback       string   `json:"feedback" validate:"omitempty,max=4000"`
	Recommendation *string  `json:"recommendation" validate:"omitempty,oneof=approve approve_with_modifications needs_more_info reject"`
}

// EvaluationResponse is the serialized representation of one evaluation.
type EvaluationResponse struct {
	ID             uint       `json:"id"`
	IdeaID         uint       `json:"idea_id"`
	EvaluatorID    uint       `json:"evaluator_id"`
	EvaluationType string     `json:"evaluation_type"`
	Status         string     `json:"status"`
	Overall        *float64   `json:"overall_score"`
	Feasibility    *float64   `json:"feasibility_score"`
	Impact         *float64   `json:"impact_score"`
	Innovation     *float64   `json:"innovation_score"`
	Enrichment     *float64   `json:"enrichment_score"`
	Feedback       string     `json:"feedback"`
	Recommendation *string    `json:"recommendation"`
	SubmittedAt    *time.Time `json:"submitted_at"`
}

// AverageScores aggregates per-criterion averages over completed evaluations.
type AverageScores struct {
	Overall     float64 `json:"overall"`
	Feasibility float64 `json:"feasibility"`
	Impact      float64 `json:"impact"`
	Innovation  float64 `json:"innovation"`
	Enrichment  float64 `json:"enrichment"`
}

// EvaluationSummaryResponse aggregates every evaluation recorded for one idea.
type EvaluationSummaryResponse struct {
	IdeaID               uint                 `json:"idea_id"`
	Total                int                  `json:"total"`
	Completed            int                  `json:"completed"`
	AvgScores            *AverageScores       `json:"avg_scores,omitempty"`
	Consensus            map[string]int       `json:"consensus"`
	TotalRecommendations int                  `json:"total_recommendations"`
	Evaluations          []EvaluationResponse `json:"evaluations"`
}

// RecommendationMeta is a fixed presentation lookup for a recommendation category.
type RecommendationMeta struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// NewEvaluationResponse converts a model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:             model.ID,
		IdeaID:         model.IdeaID,
		EvaluatorID:    model.EvaluatorID,
		EvaluationType: model.EvaluationType,
		Status:         model.Status,
		Overall:        model.Overall,
		Feasibility:    model.Feasibility,
		Impact:         model.Impact,
		Innovation:     model.Innovation,
		Enrichment:     model.Enrichment,
		Feedback:       model.Feedback,
		Recommendation: model.Recommendation,
		SubmittedAt:    model.SubmittedAt,
	}
}

// NewEvaluationResponseSlice converts a slice of models into DTOs.
func NewEvaluationResponseSlice(evaluations []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, NewEvaluationResponse(evaluation))
	}

	return responses
}

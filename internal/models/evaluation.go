package models

import "time"

// Evaluation types correspond to the review track an evaluator covers.
const (
	EvaluationTypeTechnology = "technology"
	EvaluationTypeFinance    = "finance"
	EvaluationTypeCommercial = "commercial"
)

// Evaluation statuses.
const (
	EvaluationStatusPending   = "pending"
	EvaluationStatusCompleted = "completed"
)

// Recommendation categories an evaluator may issue.
const (
	RecommendationApprove         = "approve"
	RecommendationApproveModified = "approve_with_modifications"
	RecommendationNeedsMoreInfo   = "needs_more_info"
	RecommendationReject          = "reject"
)

// EvaluatorAssignment links an evaluator to an idea awaiting review.
type EvaluatorAssignment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	IdeaID         uint      `gorm:"not null;index:idx_assignment_idea_evaluator,unique" json:"idea_id"`
	EvaluatorID    uint      `gorm:"not null;index:idx_assignment_idea_evaluator,unique" json:"evaluator_id"`
	EvaluationType string    `gorm:"size:32;not null" json:"evaluation_type"`
	Status         string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Evaluation is one evaluator's scored assessment of an idea.
type Evaluation struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	IdeaID         uint       `gorm:"not null;index:idx_evaluation_idea_evaluator,unique" json:"idea_id"`
	EvaluatorID    uint       `gorm:"not null;index:idx_evaluation_idea_evaluator,unique" json:"evaluator_id"`
	EvaluationType string     `gorm:"size:32;not null" json:"evaluation_type"`
	Status         string     `gorm:"size:32;not null;default:pending" json:"status"`
	Overall        *float64   `json:"overall_score"`
	Feasibility    *float64   `json:"feasibility_score"`
	Impact         *float64   `json:"impact_score"`
	Innovation     *float64   `json:"innovation_score"`
	Enrichment     *float64   `json:"enrichment_score"`
	Feedback       string     `gorm:"type:text" json:"feedback"`
	Recommendation *string    `gorm:"size:64" json:"recommendation"`
	SubmittedAt    *time.Time `json:"submitted_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Completed reports whether the evaluation has been finalised by its evaluator.
func (e Evaluation) Completed() bool {
	return e.Status == EvaluationStatusCompleted
}

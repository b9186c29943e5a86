// Package search holds the idea search filter state shared by the review
// surfaces. It is pure state plus derivation: no storage or network access.
package search

import (
	"strings"
	"time"
)

// Score bounds for the evaluation score slider.
const (
	ScoreMin = 0
	ScoreMax = 10
)

// Filters is a structured idea query. Empty sets and nil pointers mean the
// dimension is unconstrained; a tri-state boolean is unset when nil.
type Filters struct {
	Term           string     `json:"term"`
	Statuses       []string   `json:"statuses"`
	Categories     []string   `json:"categories"`
	SubmitterIDs   []uint     `json:"submitter_ids"`
	EvaluatorIDs   []uint     `json:"evaluator_ids"`
	DateFrom       *time.Time `json:"date_from"`
	DateTo         *time.Time `json:"date_to"`
	MinScore       float64    `json:"min_score"`
	MaxScore       float64    `json:"max_score"`
	HasAttachments *bool      `json:"has_attachments"`
	IsUrgent       *bool      `json:"is_urgent"`
}

// Default returns the all-permissive filter value.
func Default() Filters {
	return Filters{
		Statuses:     []string{},
		Categories:   []string{},
		SubmitterIDs: []uint{},
		EvaluatorIDs: []uint{},
		MinScore:     ScoreMin,
		MaxScore:     ScoreMax,
	}
}

// Snapshot returns a deep copy safe to hand to observers.
func (f Filters) Snapshot() Filters {
	copied := f
	copied.Statuses = append([]string{}, f.Statuses...)
	copied.Categories = append([]string{}, f.Categories...)
	copied.SubmitterIDs = append([]uint{}, f.SubmitterIDs...)
	copied.EvaluatorIDs = append([]uint{}, f.EvaluatorIDs...)
	if f.DateFrom != nil {
		from := *f.DateFrom
		copied.DateFrom = &from
	}
	if f.DateTo != nil {
		to := *f.DateTo
		copied.DateTo = &to
	}
	if f.HasAttachments != nil {
		v := *f.HasAttachments
		copied.HasAttachments = &v
	}
	if f.IsUrgent != nil {
		v := *f.IsUrgent
		copied.IsUrgent = &v
	}
	return copied
}

// ActiveCount reports how many independent dimensions deviate from the
// default. The date range counts as a single dimension regardless of whether
// one or both bounds are set; the score range counts only when narrowed.
func (f Filters) ActiveCount() int {
	count := 0
	if strings.TrimSpace(f.Term) != "" {
		count++
	}
	if len(f.Statuses) > 0 {
		count++
	}
	if len(f.Categories) > 0 {
		count++
	}
	if len(f.SubmitterIDs) > 0 {
		count++
	}
	if len(f.EvaluatorIDs) > 0 {
		count++
	}
	if f.DateFrom != nil || f.DateTo != nil {
		count++
	}
	if f.MinScore > ScoreMin || f.MaxScore < ScoreMax {
		count++
	}
	if f.HasAttachments != nil {
		count++
	}
	if f.IsUrgent != nil {
		count++
	}
	return count
}

// State wraps Filters with change notification. Every mutation synchronously
// invokes the observer with an immutable snapshot of the full filter value.
type State struct {
	filters  Filters
	onChange func(Filters)
}

// NewState builds a filter state seeded with the all-permissive default.
// The observer may be nil.
func NewState(onChange func(Filters)) *State {
	return &State{filters: Default(), onChange: onChange}
}

// Current returns a snapshot of the present filter value.
func (s *State) Current() Filters {
	return s.filters.Snapshot()
}

// SetTerm replaces the free-text search term.
func (s *State) SetTerm(term string) {
	s.filters.Term = term
	s.notify()
}

// SetDateRange replaces both date bounds; nil clears a bound.
func (s *State) SetDateRange(from, to *time.Time) {
	s.filters.DateFrom = from
	s.filters.DateTo = to
	s.notify()
}

// SetScoreRange applies the score slider pair. Each bound is clamped to
// [ScoreMin, ScoreMax]; the caller-supplied ordering is authoritative and is
// never reordered here.
func (s *State) SetScoreRange(min, max float64) {
	s.filters.MinScore = clampScore(min)
	s.filters.MaxScore = clampScore(max)
	s.notify()
}

// SetHasAttachments sets the attachments tri-state; nil means unset.
func (s *State) SetHasAttachments(value *bool) {
	s.filters.HasAttachments = value
	s.notify()
}

// SetIsUrgent sets the urgency tri-state; nil means unset.
func (s *State) SetIsUrgent(value *bool) {
	s.filters.IsUrgent = value
	s.notify()
}

// ToggleStatus adds or removes a status tag from the multi-select.
func (s *State) ToggleStatus(value string, included bool) {
	s.filters.Statuses = toggleString(s.filters.Statuses, value, included)
	s.notify()
}

// ToggleCategory adds or removes a category tag from the multi-select.
func (s *State) ToggleCategory(value string, included bool) {
	s.filters.Categories = toggleString(s.filters.Categories, value, included)
	s.notify()
}

// ToggleSubmitter adds or removes a submitter from the multi-select.
func (s *State) ToggleSubmitter(id uint, included bool) {
	s.filters.SubmitterIDs = toggleUint(s.filters.SubmitterIDs, id, included)
	s.notify()
}

// ToggleEvaluator adds or removes an evaluator from the multi-select.
func (s *State) ToggleEvaluator(id uint, included bool) {
	s.filters.EvaluatorIDs = toggleUint(s.filters.EvaluatorIDs, id, included)
	s.notify()
}

// Clear resets every dimension to the all-permissive default.
func (s *State) Clear() {
	s.filters = Default()
	s.notify()
}

func (s *State) notify() {
	if s.onChange != nil {
		s.onChange(s.filters.Snapshot())
	}
}

func clampScore(value float64) float64 {
	if value < ScoreMin {
		return ScoreMin
	}
	if value > ScoreMax {
		return ScoreMax
	}
	return value
}

func toggleString(set []string, value string, included bool) []string {
	result := make([]string, 0, len(set)+1)
	for _, existing := range set {
		if existing != value {
			result = append(result, existing)
		}
	}
	if included {
		result = append(result, value)
	}
	return result
}

func toggleUint(set []uint, value uint, included bool) []uint {
	result := make([]uint, 0, len(set)+1)
	for _, existing := range set {
		if existing != value {
			result = append(result, existing)
		}
	}
	if included {
		result = append(result, value)
	}
	return result
}

// internal/models/match.go
package models

type CriterionStatus string

const (
	CriterionMatch    CriterionStatus = "match"
	CriterionMismatch CriterionStatus = "mismatch"
	CriterionNeutral  CriterionStatus = "neutral"
)

// MatchCriterion is one evaluated compatibility dimension.
type MatchCriterion struct {
	Label   string          `json:"label"`
	Status  CriterionStatus `json:"status"`
	Message string          `json:"message"`
}

// MatchResult is recomputed on every request and never stored.
type MatchResult struct {
	Score         *int             `json:"score"`
	Highlights    []string         `json:"highlights"`
	Concerns      []string         `json:"concerns"`
	CriteriaCount int              `json:"criteriaCount"`
	Criteria      []MatchCriterion `json:"criteria"`
}

// EmptyMatchResult is the "no opinion" result returned when no dimension applies.
func EmptyMatchResult() MatchResult {
	return MatchResult{
		Score:      nil,
		Highlights: []string{},
		Concerns:   []string{},
		Criteria:   []MatchCriterion{},
	}
}

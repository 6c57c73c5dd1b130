// Package matching scores how well an adopter fits what a tutor is looking for.
//
// Each dimension contributes a weight of 1 when it applies. A match earns the
// full weight, a neutral verdict (missing or inconclusive adopter data) earns
// half, and a mismatch earns nothing. The score is the earned share, rounded,
// on a 0-100 scale, or nil when no dimension applied.
package matching

import (
	"math"

	"adoption-workers/internal/models"
)

const (
	weightMatch   = 1.0
	weightNeutral = 0.5
)

// Scorer is stateless and safe for concurrent use.
type Scorer struct {
	dimensions []Dimension
}

func NewScorer() *Scorer {
	return &Scorer{dimensions: Dimensions()}
}

// NewScorerWithDimensions builds a scorer over a custom dimension list.
func NewScorerWithDimensions(dims []Dimension) *Scorer {
	return &Scorer{dimensions: dims}
}

var defaultScorer = NewScorer()

// Score evaluates adopter against preferences with the default dimensions.
func Score(adopter models.AdopterProfile, prefs models.PetTutorPreferences) models.MatchResult {
	return defaultScorer.Score(adopter, prefs)
}

func (s *Scorer) Score(adopter models.AdopterProfile, prefs models.PetTutorPreferences) models.MatchResult {
	result := models.EmptyMatchResult()

	var total, earned float64
	for _, dim := range s.dimensions {
		out, ok := dim.Evaluate(&adopter, &prefs)
		if !ok {
			continue
		}

		total++
		switch out.Status {
		case models.CriterionMatch:
			earned += weightMatch
			result.Highlights = append(result.Highlights, out.Message)
		case models.CriterionMismatch:
			result.Concerns = append(result.Concerns, out.Message)
		default:
			out.Status = models.CriterionNeutral
			earned += weightNeutral
		}

		result.Criteria = append(result.Criteria, models.MatchCriterion{
			Label:   dim.Label,
			Status:  out.Status,
			Message: out.Message,
		})
	}

	if total == 0 {
		return result
	}

	score := clampPercent(int(math.Round(earned / total * 100)))
	result.Score = &score
	result.CriteriaCount = len(result.Criteria)
	return result
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

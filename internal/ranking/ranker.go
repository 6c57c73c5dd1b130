// Package ranking orders the adopters interested in an animal so its tutor
// knows whom to contact first.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"adoption-workers/internal/matching"
	"adoption-workers/internal/models"
)

// Scorer is the compatibility engine the ranker consults per adopter.
type Scorer interface {
	Score(adopter models.AdopterProfile, prefs models.PetTutorPreferences) models.MatchResult
}

// Weights blend the three ranking signals. They must sum to 1.
type Weights struct {
	Match        float64 `mapstructure:"match_weight"`
	Completeness float64 `mapstructure:"completeness_weight"`
	Conversation float64 `mapstructure:"conversation_weight"`
}

var DefaultWeights = Weights{Match: 0.5, Completeness: 0.3, Conversation: 0.2}

const weightTolerance = 0.001

func (w Weights) Validate() error {
	if w.Match < 0 || w.Completeness < 0 || w.Conversation < 0 {
		return fmt.Errorf("ranking weights must be non-negative: %+v", w)
	}
	if sum := w.Match + w.Completeness + w.Conversation; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("ranking weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// Candidate is an interested adopter with the profile loaded for them.
// Profile is nil when loading failed or the adopter never filled one in.
type Candidate struct {
	Adopter models.InterestedAdopter
	Profile *models.AdopterProfile
}

type Ranker struct {
	scorer  Scorer
	weights Weights
}

func NewRanker(scorer Scorer, weights Weights) *Ranker {
	if scorer == nil {
		scorer = matching.NewScorer()
	}
	return &Ranker{scorer: scorer, weights: weights}
}

// Rank scores every distinct candidate other than the tutor and returns them
// best first. conversations maps adopter id to an existing conversation id
// about this animal. Ties fall back to who favorited first, then adopter id.
func (r *Ranker) Rank(animal models.Animal, requestingTutorID string, candidates []Candidate, conversations map[string]string) []models.PriorityAdopterItem {
	unique := dedupe(candidates, requestingTutorID)

	items := make([]models.PriorityAdopterItem, 0, len(unique))
	favoritedAt := make(map[string]int64, len(unique))
	for _, c := range unique {
		items = append(items, r.rankOne(animal.Preferences, c, conversations))
		favoritedAt[c.Adopter.AdopterID] = c.Adopter.FavoritedAt.UnixNano()
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if fa, fb := favoritedAt[a.AdopterID], favoritedAt[b.AdopterID]; fa != fb {
			return fa < fb
		}
		return a.AdopterID < b.AdopterID
	})

	return items
}

func (r *Ranker) rankOne(prefs models.PetTutorPreferences, c Candidate, conversations map[string]string) models.PriorityAdopterItem {
	item := models.PriorityAdopterItem{
		AdopterID:           c.Adopter.AdopterID,
		DisplayName:         c.Adopter.DisplayName,
		AvatarURL:           c.Adopter.AvatarURL,
		ProfileCompleteness: ProfileCompleteness(c.Adopter, c.Profile),
	}

	if c.Profile != nil {
		item.MatchScore = r.scorer.Score(*c.Profile, prefs).Score
	}

	if id, ok := conversations[c.Adopter.AdopterID]; ok {
		convID := id
		item.HasConversation = true
		item.ConversationID = &convID
	}

	item.PriorityScore = r.priority(item)
	return item
}

func (r *Ranker) priority(item models.PriorityAdopterItem) int {
	matchFraction := 0.0
	if item.MatchScore != nil {
		matchFraction = float64(*item.MatchScore) / 100
	}
	conversation := 0.0
	if item.HasConversation {
		conversation = 1
	}

	raw := 100 * (r.weights.Match*matchFraction +
		r.weights.Completeness*float64(item.ProfileCompleteness)/100 +
		r.weights.Conversation*conversation)

	v := int(math.Round(raw))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// dedupe keeps one entry per adopter, the earliest favorite, and drops the tutor.
func dedupe(candidates []Candidate, tutorID string) []Candidate {
	index := make(map[string]int, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		id := c.Adopter.AdopterID
		if id == "" || id == tutorID {
			continue
		}
		if i, seen := index[id]; seen {
			if c.Adopter.FavoritedAt.Before(out[i].Adopter.FavoritedAt) {
				out[i] = c
			}
			continue
		}
		index[id] = len(out)
		out = append(out, c)
	}
	return out
}

// internal/workers/adoption/recommend-animals/models.go
package recommendanimals

import (
	"adoption-workers/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Input struct {
	AdopterID      string                 `json:"adopterId"`
	AdopterProfile *models.AdopterProfile `json:"adopterProfile,omitempty"`
	Species        *models.Species        `json:"species,omitempty"`
	Limit          int                    `json:"limit,omitempty"`
}

func (in *Input) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.AdopterID, validation.Required),
		validation.Field(&in.Species, validation.In(models.SpeciesDog, models.SpeciesCat, models.SpeciesBoth)),
		validation.Field(&in.Limit, validation.Min(0)),
	)
}

type RecommendedAnimal struct {
	AnimalID string  `json:"animalId"`
	Name     string  `json:"name"`
	OwnerID  string  `json:"ownerId"`
	PhotoURL *string `json:"photoUrl"`
	models.MatchResult
}

type Output struct {
	RecommendationID string              `json:"recommendationId"`
	AdopterID        string              `json:"adopterId"`
	Animals          []RecommendedAnimal `json:"animals"`
	Total            int                 `json:"total"`
}

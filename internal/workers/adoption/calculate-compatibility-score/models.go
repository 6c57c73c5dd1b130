// internal/workers/adoption/calculate-compatibility-score/models.go
package calculatecompatibilityscore

import (
	"adoption-workers/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Input names the pair to score. Inline profiles take precedence over stored ones.
type Input struct {
	AdopterID      string                      `json:"adopterId"`
	AnimalID       string                      `json:"animalId"`
	AdopterProfile *models.AdopterProfile      `json:"adopterProfile,omitempty"`
	PetPreferences *models.PetTutorPreferences `json:"petPreferences,omitempty"`
}

func (in *Input) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.AdopterID, validation.When(in.AdopterProfile == nil, validation.Required)),
		validation.Field(&in.AnimalID, validation.When(in.PetPreferences == nil, validation.Required)),
	)
}

type Output struct {
	AdopterID string `json:"adopterId"`
	AnimalID  string `json:"animalId"`
	models.MatchResult
}

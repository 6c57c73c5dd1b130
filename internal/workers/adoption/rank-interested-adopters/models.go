// internal/workers/adoption/rank-interested-adopters/models.go
package rankinterestedadopters

import (
	"adoption-workers/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Input struct {
	AnimalID          string `json:"animalId"`
	RequestingTutorID string `json:"requestingTutorId"`
}

func (in *Input) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.AnimalID, validation.Required),
		validation.Field(&in.RequestingTutorID, validation.Required),
	)
}

type Output struct {
	RankingID string                       `json:"rankingId"`
	AnimalID  string                       `json:"animalId"`
	Adopters  []models.PriorityAdopterItem `json:"adopters"`
	Total     int                          `json:"total"`
}

package ranking

import (
	"math"
	"strings"

	"adoption-workers/internal/models"
)

// completenessFields is the screening checklist: fifteen profile answers plus
// the phone and city from the adopter's account.
const completenessFields = 17

// ProfileCompleteness returns the share of the checklist the adopter filled in,
// as a 0-100 percentage. A nil profile still counts the account fields.
func ProfileCompleteness(adopter models.InterestedAdopter, profile *models.AdopterProfile) int {
	filled := 0
	if filledString(adopter.Phone) {
		filled++
	}
	if filledString(adopter.City) {
		filled++
	}

	if profile != nil {
		checks := []bool{
			filledString((*string)(profile.HousingType)),
			profile.HasYard != nil,
			profile.HasOtherPets != nil,
			profile.HasChildren != nil,
			filledString((*string)(profile.TimeAtHome)),
			filledString((*string)(profile.PetsAllowedAtHome)),
			filledString((*string)(profile.DogExperience)),
			filledString((*string)(profile.CatExperience)),
			filledString((*string)(profile.HouseholdAgreement)),
			filledString(profile.WhyAdopt),
			filledString((*string)(profile.ActivityLevel)),
			filledString((*string)(profile.PreferredPetAge)),
			filledString((*string)(profile.VetCareCommitment)),
			filledString((*string)(profile.WalkFrequency)),
			filledString((*string)(profile.MonthlyBudget)),
		}
		for _, ok := range checks {
			if ok {
				filled++
			}
		}
	}

	return int(math.Round(float64(filled) / completenessFields * 100))
}

func filledString(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

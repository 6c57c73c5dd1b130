// internal/models/pet.go
package models

// PetTutorPreferences describes the adopter a tutor is looking for, plus the
// animal's own attributes that take part in matching. A nil preference means
// the tutor has no opinion on that dimension.
type PetTutorPreferences struct {
	PreferredTutorHousingType        *HousingType        `json:"preferredTutorHousingType,omitempty"`
	PreferredTutorHasYard            *TriState           `json:"preferredTutorHasYard,omitempty"`
	PreferredTutorHasOtherPets       *TriState           `json:"preferredTutorHasOtherPets,omitempty"`
	PreferredTutorHasChildren        *TriState           `json:"preferredTutorHasChildren,omitempty"`
	PreferredTutorTimeAtHome         *TimeAtHome         `json:"preferredTutorTimeAtHome,omitempty"`
	PreferredTutorPetsAllowedAtHome  *PetsAllowed        `json:"preferredTutorPetsAllowedAtHome,omitempty"`
	PreferredTutorDogExperience      *Experience         `json:"preferredTutorDogExperience,omitempty"`
	PreferredTutorCatExperience      *Experience         `json:"preferredTutorCatExperience,omitempty"`
	PreferredTutorHouseholdAgreement *HouseholdAgreement `json:"preferredTutorHouseholdAgreement,omitempty"`
	PreferredTutorWalkFrequency      *WalkFrequency      `json:"preferredTutorWalkFrequency,omitempty"`
	HasOngoingCosts                  *bool               `json:"hasOngoingCosts,omitempty"`

	Species      *Species     `json:"species,omitempty"`
	Sex          *Sex         `json:"sex,omitempty"`
	Size         *Size        `json:"size,omitempty"`
	Age          *float64     `json:"age,omitempty"`
	EnergyLevel  *EnergyLevel `json:"energyLevel,omitempty"`
	SpecialNeeds *bool        `json:"specialNeeds,omitempty"`
	HealthNotes  *string      `json:"healthNotes,omitempty"`
}

// internal/models/adopter.go
package models

// AdopterProfile holds the self-reported screening answers of a prospective adopter.
// Every field is optional; nil means the adopter never answered.
type AdopterProfile struct {
	HousingType        *HousingType        `json:"housingType,omitempty"`
	HasYard            *bool               `json:"hasYard,omitempty"`
	HasOtherPets       *bool               `json:"hasOtherPets,omitempty"`
	HasChildren        *bool               `json:"hasChildren,omitempty"`
	TimeAtHome         *TimeAtHome         `json:"timeAtHome,omitempty"`
	PetsAllowedAtHome  *PetsAllowed        `json:"petsAllowedAtHome,omitempty"`
	DogExperience      *Experience         `json:"dogExperience,omitempty"`
	CatExperience      *Experience         `json:"catExperience,omitempty"`
	HouseholdAgreement *HouseholdAgreement `json:"householdAgreement,omitempty"`
	WhyAdopt           *string             `json:"whyAdopt,omitempty"`
	SpeciesPreference  *Species            `json:"speciesPreference,omitempty"`
	SizePreference     *Size               `json:"sizePreference,omitempty"`
	SexPreference      *Sex                `json:"sexPreference,omitempty"`
	ActivityLevel      *EnergyLevel        `json:"activityLevel,omitempty"`
	PreferredPetAge    *AgeBracket         `json:"preferredPetAge,omitempty"`
	VetCareCommitment  *VetCommitment      `json:"vetCareCommitment,omitempty"`
	WalkFrequency      *WalkFrequency      `json:"walkFrequency,omitempty"`
	MonthlyBudget      *Budget             `json:"monthlyBudget,omitempty"`
}

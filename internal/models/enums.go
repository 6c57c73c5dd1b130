// internal/models/enums.go
package models

// Codes are stored exactly as the listing and screening forms submit them.
// Unknown values are carried through untouched; the scorer treats them as non-matching.

type HousingType string

const (
	HousingHouse       HousingType = "CASA"
	HousingApartment   HousingType = "APARTAMENTO"
	HousingIndifferent HousingType = "INDIFERENTE"
)

// TriState is a tutor-side yes/no preference that may also be "doesn't matter".
type TriState string

const (
	TriStateYes         TriState = "SIM"
	TriStateNo          TriState = "NAO"
	TriStateIndifferent TriState = "INDIFERENTE"
)

type TimeAtHome string

const (
	TimeAtHomeMostDay     TimeAtHome = "MOST_DAY"
	TimeAtHomeHalfDay     TimeAtHome = "HALF_DAY"
	TimeAtHomeLittle      TimeAtHome = "LITTLE"
	TimeAtHomeIndifferent TimeAtHome = "INDIFERENTE"
)

type PetsAllowed string

const (
	PetsAllowedYes    PetsAllowed = "YES"
	PetsAllowedNo     PetsAllowed = "NO"
	PetsAllowedUnsure PetsAllowed = "UNSURE"
)

type Experience string

const (
	ExperienceNever     Experience = "NEVER"
	ExperienceHadBefore Experience = "HAD_BEFORE"
	ExperienceHaveNow   Experience = "HAVE_NOW"
)

type HouseholdAgreement string

const (
	HouseholdAgreementYes        HouseholdAgreement = "YES"
	HouseholdAgreementDiscussing HouseholdAgreement = "DISCUSSING"
)

type Species string

const (
	SpeciesDog  Species = "DOG"
	SpeciesCat  Species = "CAT"
	SpeciesBoth Species = "BOTH"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexBoth   Sex = "both"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeBoth   Size = "both"
)

// EnergyLevel doubles as the adopter's activity level.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "LOW"
	EnergyMedium EnergyLevel = "MEDIUM"
	EnergyHigh   EnergyLevel = "HIGH"
)

type AgeBracket string

const (
	AgePuppy  AgeBracket = "PUPPY"
	AgeAdult  AgeBracket = "ADULT"
	AgeSenior AgeBracket = "SENIOR"
	AgeAny    AgeBracket = "ANY"
)

type VetCommitment string

const (
	VetCommitmentYes VetCommitment = "YES"
	VetCommitmentNo  VetCommitment = "NO"
)

type WalkFrequency string

const (
	WalkRarely        WalkFrequency = "RARELY"
	WalkFewTimesWeek  WalkFrequency = "FEW_TIMES_WEEK"
	WalkDaily         WalkFrequency = "DAILY"
	WalkNotApplicable WalkFrequency = "NOT_APPLICABLE"
	WalkIndifferent   WalkFrequency = "INDIFERENTE"
)

type Budget string

const (
	BudgetLow    Budget = "LOW"
	BudgetMedium Budget = "MEDIUM"
	BudgetHigh   Budget = "HIGH"
)

// Ptr returns a pointer to v. Handy for building optional profile fields.
func Ptr[T any](v T) *T {
	return &v
}

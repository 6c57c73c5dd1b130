package matching

import (
	"testing"

	"adoption-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

type dimensionCase struct {
	name    string
	adopter models.AdopterProfile
	prefs   models.PetTutorPreferences
	applies bool
	status  models.CriterionStatus
}

func runDimensionCases(t *testing.T, eval Evaluator, cases []dimensionCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := eval(&tt.adopter, &tt.prefs)
			assert.Equal(t, tt.applies, ok)
			if tt.applies {
				assert.Equal(t, tt.status, out.Status)
				assert.NotEmpty(t, out.Message)
			}
		})
	}
}

func TestEvalPetsAllowed(t *testing.T) {
	want := func(v models.PetsAllowed) models.PetTutorPreferences {
		return models.PetTutorPreferences{PreferredTutorPetsAllowedAtHome: models.Ptr(v)}
	}
	have := func(v models.PetsAllowed) models.AdopterProfile {
		return models.AdopterProfile{PetsAllowedAtHome: models.Ptr(v)}
	}

	runDimensionCases(t, evalPetsAllowed, []dimensionCase{
		{name: "no preference", applies: false},
		{name: "adopter missing", prefs: want(models.PetsAllowedYes), applies: true, status: models.CriterionNeutral},
		{name: "yes yes", adopter: have(models.PetsAllowedYes), prefs: want(models.PetsAllowedYes), applies: true, status: models.CriterionMatch},
		{name: "yes no", adopter: have(models.PetsAllowedNo), prefs: want(models.PetsAllowedYes), applies: true, status: models.CriterionMismatch},
		{name: "yes unsure", adopter: have(models.PetsAllowedUnsure), prefs: want(models.PetsAllowedYes), applies: true, status: models.CriterionMismatch},
		{name: "no yes", adopter: have(models.PetsAllowedYes), prefs: want(models.PetsAllowedNo), applies: true, status: models.CriterionMismatch},
		{name: "no no", adopter: have(models.PetsAllowedNo), prefs: want(models.PetsAllowedNo), applies: true, status: models.CriterionMatch},
		{name: "no unsure", adopter: have(models.PetsAllowedUnsure), prefs: want(models.PetsAllowedNo), applies: true, status: models.CriterionNeutral},
	})
}

func TestEvalHousehold(t *testing.T) {
	want := func(v models.HouseholdAgreement) models.PetTutorPreferences {
		return models.PetTutorPreferences{PreferredTutorHouseholdAgreement: models.Ptr(v)}
	}
	have := func(v models.HouseholdAgreement) models.AdopterProfile {
		return models.AdopterProfile{HouseholdAgreement: models.Ptr(v)}
	}

	runDimensionCases(t, evalHousehold, []dimensionCase{
		{name: "no preference", adopter: have(models.HouseholdAgreementYes), applies: false},
		{name: "adopter missing", prefs: want(models.HouseholdAgreementYes), applies: true, status: models.CriterionNeutral},
		{name: "yes yes", adopter: have(models.HouseholdAgreementYes), prefs: want(models.HouseholdAgreementYes), applies: true, status: models.CriterionMatch},
		{name: "yes discussing", adopter: have(models.HouseholdAgreementDiscussing), prefs: want(models.HouseholdAgreementYes), applies: true, status: models.CriterionMismatch},
		{name: "discussing yes", adopter: have(models.HouseholdAgreementYes), prefs: want(models.HouseholdAgreementDiscussing), applies: true, status: models.CriterionNeutral},
		{name: "discussing discussing", adopter: have(models.HouseholdAgreementDiscussing), prefs: want(models.HouseholdAgreementDiscussing), applies: true, status: models.CriterionMatch},
	})
}

func TestEvalExperience_Monotonic(t *testing.T) {
	levels := []models.Experience{models.ExperienceNever, models.ExperienceHadBefore, models.ExperienceHaveNow}

	for ri, required := range levels {
		for hi, held := range levels {
			dog, ok := evalDogExperience(
				&models.AdopterProfile{DogExperience: models.Ptr(held)},
				&models.PetTutorPreferences{PreferredTutorDogExperience: models.Ptr(required)},
			)
			assert.True(t, ok)
			cat, ok := evalCatExperience(
				&models.AdopterProfile{CatExperience: models.Ptr(held)},
				&models.PetTutorPreferences{PreferredTutorCatExperience: models.Ptr(required)},
			)
			assert.True(t, ok)

			expected := models.CriterionMismatch
			if hi >= ri {
				expected = models.CriterionMatch
			}
			assert.Equal(t, expected, dog.Status, "dog have=%s want=%s", held, required)
			assert.Equal(t, expected, cat.Status, "cat have=%s want=%s", held, required)
		}
	}
}

func TestEvalTriStates(t *testing.T) {
	runDimensionCases(t, evalYard, []dimensionCase{
		{name: "no preference", adopter: models.AdopterProfile{HasYard: models.Ptr(true)}, applies: false},
		{name: "indifferent", prefs: models.PetTutorPreferences{PreferredTutorHasYard: models.Ptr(models.TriStateIndifferent)}, applies: true, status: models.CriterionMatch},
		{name: "missing", prefs: models.PetTutorPreferences{PreferredTutorHasYard: models.Ptr(models.TriStateYes)}, applies: true, status: models.CriterionNeutral},
		{name: "wants yard, none", adopter: models.AdopterProfile{HasYard: models.Ptr(false)}, prefs: models.PetTutorPreferences{PreferredTutorHasYard: models.Ptr(models.TriStateYes)}, applies: true, status: models.CriterionMismatch},
		{name: "unknown code", adopter: models.AdopterProfile{HasYard: models.Ptr(true)}, prefs: models.PetTutorPreferences{PreferredTutorHasYard: models.Ptr(models.TriState("TALVEZ"))}, applies: true, status: models.CriterionMismatch},
	})

	runDimensionCases(t, evalOtherPets, []dimensionCase{
		{name: "wants none, has", adopter: models.AdopterProfile{HasOtherPets: models.Ptr(true)}, prefs: models.PetTutorPreferences{PreferredTutorHasOtherPets: models.Ptr(models.TriStateNo)}, applies: true, status: models.CriterionMismatch},
		{name: "wants some, has", adopter: models.AdopterProfile{HasOtherPets: models.Ptr(true)}, prefs: models.PetTutorPreferences{PreferredTutorHasOtherPets: models.Ptr(models.TriStateYes)}, applies: true, status: models.CriterionMatch},
	})

	runDimensionCases(t, evalChildren, []dimensionCase{
		{name: "wants children, has", adopter: models.AdopterProfile{HasChildren: models.Ptr(true)}, prefs: models.PetTutorPreferences{PreferredTutorHasChildren: models.Ptr(models.TriStateYes)}, applies: true, status: models.CriterionMatch},
		{name: "wants none, has", adopter: models.AdopterProfile{HasChildren: models.Ptr(true)}, prefs: models.PetTutorPreferences{PreferredTutorHasChildren: models.Ptr(models.TriStateNo)}, applies: true, status: models.CriterionMismatch},
	})
}

func TestEvalTimeAtHome(t *testing.T) {
	runDimensionCases(t, evalTimeAtHome, []dimensionCase{
		{name: "indifferent", adopter: models.AdopterProfile{TimeAtHome: models.Ptr(models.TimeAtHomeLittle)}, prefs: models.PetTutorPreferences{PreferredTutorTimeAtHome: models.Ptr(models.TimeAtHomeIndifferent)}, applies: true, status: models.CriterionMatch},
		{name: "equal", adopter: models.AdopterProfile{TimeAtHome: models.Ptr(models.TimeAtHomeHalfDay)}, prefs: models.PetTutorPreferences{PreferredTutorTimeAtHome: models.Ptr(models.TimeAtHomeHalfDay)}, applies: true, status: models.CriterionMatch},
		{name: "different", adopter: models.AdopterProfile{TimeAtHome: models.Ptr(models.TimeAtHomeLittle)}, prefs: models.PetTutorPreferences{PreferredTutorTimeAtHome: models.Ptr(models.TimeAtHomeMostDay)}, applies: true, status: models.CriterionMismatch},
	})
}

func TestEvalSpeciesAndSex(t *testing.T) {
	runDimensionCases(t, evalSpecies, []dimensionCase{
		{name: "animal species unknown", adopter: models.AdopterProfile{SpeciesPreference: models.Ptr(models.SpeciesDog)}, applies: false},
		{name: "adopter has no preference", prefs: models.PetTutorPreferences{Species: models.Ptr(models.SpeciesDog)}, applies: false},
		{name: "both", adopter: models.AdopterProfile{SpeciesPreference: models.Ptr(models.SpeciesBoth)}, prefs: models.PetTutorPreferences{Species: models.Ptr(models.SpeciesCat)}, applies: true, status: models.CriterionMatch},
		{name: "different", adopter: models.AdopterProfile{SpeciesPreference: models.Ptr(models.SpeciesDog)}, prefs: models.PetTutorPreferences{Species: models.Ptr(models.SpeciesCat)}, applies: true, status: models.CriterionMismatch},
	})

	runDimensionCases(t, evalSex, []dimensionCase{
		{name: "both", adopter: models.AdopterProfile{SexPreference: models.Ptr(models.SexBoth)}, prefs: models.PetTutorPreferences{Sex: models.Ptr(models.SexMale)}, applies: true, status: models.CriterionMatch},
		{name: "equal", adopter: models.AdopterProfile{SexPreference: models.Ptr(models.SexMale)}, prefs: models.PetTutorPreferences{Sex: models.Ptr(models.SexMale)}, applies: true, status: models.CriterionMatch},
		{name: "different", adopter: models.AdopterProfile{SexPreference: models.Ptr(models.SexFemale)}, prefs: models.PetTutorPreferences{Sex: models.Ptr(models.SexMale)}, applies: true, status: models.CriterionMismatch},
	})
}

func TestEvalSize(t *testing.T) {
	runDimensionCases(t, evalSize, []dimensionCase{
		{name: "adopter any size", adopter: models.AdopterProfile{SizePreference: models.Ptr(models.SizeBoth)}, prefs: models.PetTutorPreferences{Size: models.Ptr(models.SizeLarge)}, applies: false},
		{name: "no adopter preference", prefs: models.PetTutorPreferences{Size: models.Ptr(models.SizeLarge)}, applies: false},
		{name: "animal size unknown", adopter: models.AdopterProfile{SizePreference: models.Ptr(models.SizeSmall)}, applies: false},
		{name: "equal", adopter: models.AdopterProfile{SizePreference: models.Ptr(models.SizeSmall)}, prefs: models.PetTutorPreferences{Size: models.Ptr(models.SizeSmall)}, applies: true, status: models.CriterionMatch},
		{name: "different", adopter: models.AdopterProfile{SizePreference: models.Ptr(models.SizeSmall)}, prefs: models.PetTutorPreferences{Size: models.Ptr(models.SizeLarge)}, applies: true, status: models.CriterionMismatch},
	})
}

func TestEvalEnergy(t *testing.T) {
	prefs := func(v models.EnergyLevel) models.PetTutorPreferences {
		return models.PetTutorPreferences{EnergyLevel: models.Ptr(v)}
	}
	runDimensionCases(t, evalEnergy, []dimensionCase{
		{name: "animal energy unknown", adopter: models.AdopterProfile{ActivityLevel: models.Ptr(models.EnergyLow)}, applies: false},
		{name: "adopter missing", prefs: prefs(models.EnergyLow), applies: true, status: models.CriterionNeutral},
		{name: "more active", adopter: models.AdopterProfile{ActivityLevel: models.Ptr(models.EnergyHigh)}, prefs: prefs(models.EnergyLow), applies: true, status: models.CriterionMatch},
		{name: "equal", adopter: models.AdopterProfile{ActivityLevel: models.Ptr(models.EnergyMedium)}, prefs: prefs(models.EnergyMedium), applies: true, status: models.CriterionMatch},
		{name: "less active", adopter: models.AdopterProfile{ActivityLevel: models.Ptr(models.EnergyLow)}, prefs: prefs(models.EnergyHigh), applies: true, status: models.CriterionMismatch},
	})
}

func TestEvalAge(t *testing.T) {
	prefs := func(years float64) models.PetTutorPreferences {
		return models.PetTutorPreferences{Age: models.Ptr(years)}
	}
	wants := func(b models.AgeBracket) models.AdopterProfile {
		return models.AdopterProfile{PreferredPetAge: models.Ptr(b)}
	}
	runDimensionCases(t, evalAge, []dimensionCase{
		{name: "any age", adopter: wants(models.AgeAny), prefs: prefs(1), applies: false},
		{name: "age unknown", adopter: wants(models.AgePuppy), applies: false},
		{name: "puppy", adopter: wants(models.AgePuppy), prefs: prefs(1.5), applies: true, status: models.CriterionMatch},
		{name: "two is adult", adopter: wants(models.AgePuppy), prefs: prefs(2), applies: true, status: models.CriterionMismatch},
		{name: "seven is adult", adopter: wants(models.AgeAdult), prefs: prefs(7), applies: true, status: models.CriterionMatch},
		{name: "senior", adopter: wants(models.AgeSenior), prefs: prefs(7.5), applies: true, status: models.CriterionMatch},
	})
}

func TestAgeBracketFor(t *testing.T) {
	assert.Equal(t, models.AgePuppy, AgeBracketFor(0))
	assert.Equal(t, models.AgePuppy, AgeBracketFor(1.99))
	assert.Equal(t, models.AgeAdult, AgeBracketFor(2))
	assert.Equal(t, models.AgeAdult, AgeBracketFor(7))
	assert.Equal(t, models.AgeSenior, AgeBracketFor(7.01))
}

func TestEvalVetCare(t *testing.T) {
	special := models.PetTutorPreferences{SpecialNeeds: models.Ptr(true)}
	notes := models.PetTutorPreferences{HealthNotes: models.Ptr("  alergia alimentar ")}

	runDimensionCases(t, evalVetCare, []dimensionCase{
		{name: "healthy", adopter: models.AdopterProfile{VetCareCommitment: models.Ptr(models.VetCommitmentYes)}, prefs: models.PetTutorPreferences{SpecialNeeds: models.Ptr(false)}, applies: false},
		{name: "blank notes", prefs: models.PetTutorPreferences{HealthNotes: models.Ptr("   ")}, applies: false},
		{name: "special needs, unset", prefs: special, applies: true, status: models.CriterionNeutral},
		{name: "special needs, committed", adopter: models.AdopterProfile{VetCareCommitment: models.Ptr(models.VetCommitmentYes)}, prefs: special, applies: true, status: models.CriterionMatch},
		{name: "health notes, not committed", adopter: models.AdopterProfile{VetCareCommitment: models.Ptr(models.VetCommitmentNo)}, prefs: notes, applies: true, status: models.CriterionMismatch},
	})
}

func TestEvalWalkFrequency(t *testing.T) {
	want := func(v models.WalkFrequency) models.PetTutorPreferences {
		return models.PetTutorPreferences{PreferredTutorWalkFrequency: models.Ptr(v)}
	}
	have := func(v models.WalkFrequency) models.AdopterProfile {
		return models.AdopterProfile{WalkFrequency: models.Ptr(v)}
	}
	runDimensionCases(t, evalWalkFrequency, []dimensionCase{
		{name: "indifferent", adopter: have(models.WalkRarely), prefs: want(models.WalkIndifferent), applies: true, status: models.CriterionMatch},
		{name: "tutor not applicable", prefs: want(models.WalkNotApplicable), applies: true, status: models.CriterionMatch},
		{name: "adopter missing", prefs: want(models.WalkDaily), applies: true, status: models.CriterionNeutral},
		{name: "adopter not applicable", adopter: have(models.WalkNotApplicable), prefs: want(models.WalkDaily), applies: true, status: models.CriterionNeutral},
		{name: "exceeds", adopter: have(models.WalkDaily), prefs: want(models.WalkRarely), applies: true, status: models.CriterionMatch},
		{name: "below", adopter: have(models.WalkFewTimesWeek), prefs: want(models.WalkDaily), applies: true, status: models.CriterionMismatch},
	})
}

func TestEvalBudget(t *testing.T) {
	costs := models.PetTutorPreferences{HasOngoingCosts: models.Ptr(true)}
	budget := func(v models.Budget) models.AdopterProfile {
		return models.AdopterProfile{MonthlyBudget: models.Ptr(v)}
	}
	runDimensionCases(t, evalBudget, []dimensionCase{
		{name: "no ongoing costs", adopter: budget(models.BudgetLow), prefs: models.PetTutorPreferences{HasOngoingCosts: models.Ptr(false)}, applies: false},
		{name: "unset", prefs: costs, applies: true, status: models.CriterionNeutral},
		{name: "high", adopter: budget(models.BudgetHigh), prefs: costs, applies: true, status: models.CriterionMatch},
		{name: "medium", adopter: budget(models.BudgetMedium), prefs: costs, applies: true, status: models.CriterionMatch},
		{name: "low", adopter: budget(models.BudgetLow), prefs: costs, applies: true, status: models.CriterionMismatch},
	})
}

func TestLabelFallback(t *testing.T) {
	assert.Equal(t, "Casa", label(housingLabels, models.HousingHouse))
	assert.Equal(t, "BARCO", label(housingLabels, models.HousingType("BARCO")))
	assert.Equal(t, "Fêmea", label(sexLabels, models.SexFemale))
	assert.Equal(t, "Qualquer idade", label(ageLabels, models.AgeAny))
}

func TestAtLeast_UnknownCodes(t *testing.T) {
	assert.False(t, atLeast(experienceRank, models.Experience("X"), models.ExperienceNever))
	assert.False(t, atLeast(experienceRank, models.ExperienceHaveNow, models.Experience("X")))
	assert.True(t, atLeast(walkRank, models.WalkDaily, models.WalkRarely))
	assert.False(t, atLeast(walkRank, models.WalkNotApplicable, models.WalkRarely))
}

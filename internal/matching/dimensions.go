package matching

import (
	"fmt"
	"strings"

	"adoption-workers/internal/models"
)

// Outcome is the verdict of a single dimension.
type Outcome struct {
	Status  models.CriterionStatus
	Message string
}

// Evaluator judges one dimension. ok is false when the dimension does not
// apply to this pair and must be left out of the score entirely.
type Evaluator func(a *models.AdopterProfile, p *models.PetTutorPreferences) (out Outcome, ok bool)

// Dimension couples a criterion label with its evaluator.
type Dimension struct {
	Key      string
	Label    string
	Evaluate Evaluator
}

// Dimensions returns the criteria in evaluation order. The order is observable:
// criteria, highlights and concerns are emitted in it.
func Dimensions() []Dimension {
	return []Dimension{
		{Key: "housingType", Label: "Moradia", Evaluate: evalHousing},
		{Key: "hasYard", Label: "Quintal", Evaluate: evalYard},
		{Key: "hasOtherPets", Label: "Outros animais", Evaluate: evalOtherPets},
		{Key: "hasChildren", Label: "Crianças", Evaluate: evalChildren},
		{Key: "timeAtHome", Label: "Tempo em casa", Evaluate: evalTimeAtHome},
		{Key: "petsAllowedAtHome", Label: "Permissão para animais", Evaluate: evalPetsAllowed},
		{Key: "dogExperience", Label: "Experiência com cães", Evaluate: evalDogExperience},
		{Key: "catExperience", Label: "Experiência com gatos", Evaluate: evalCatExperience},
		{Key: "householdAgreement", Label: "Acordo da família", Evaluate: evalHousehold},
		{Key: "species", Label: "Espécie", Evaluate: evalSpecies},
		{Key: "sex", Label: "Sexo", Evaluate: evalSex},
		{Key: "size", Label: "Porte", Evaluate: evalSize},
		{Key: "energyLevel", Label: "Nível de energia", Evaluate: evalEnergy},
		{Key: "age", Label: "Idade", Evaluate: evalAge},
		{Key: "vetCare", Label: "Cuidados veterinários", Evaluate: evalVetCare},
		{Key: "walkFrequency", Label: "Passeios", Evaluate: evalWalkFrequency},
		{Key: "budget", Label: "Custos mensais", Evaluate: evalBudget},
	}
}

func match(format string, args ...interface{}) (Outcome, bool) {
	return Outcome{Status: models.CriterionMatch, Message: fmt.Sprintf(format, args...)}, true
}

func mismatch(format string, args ...interface{}) (Outcome, bool) {
	return Outcome{Status: models.CriterionMismatch, Message: fmt.Sprintf(format, args...)}, true
}

func neutral(format string, args ...interface{}) (Outcome, bool) {
	return Outcome{Status: models.CriterionNeutral, Message: fmt.Sprintf(format, args...)}, true
}

func evalHousing(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.PreferredTutorHousingType == nil {
		return Outcome{}, false
	}
	want := *p.PreferredTutorHousingType
	if want == models.HousingIndifferent {
		return match("O tutor aceita qualquer tipo de moradia")
	}
	if a.HousingType == nil {
		return neutral("Tipo de moradia não informado no seu perfil")
	}
	if *a.HousingType == want {
		return match("Moradia compatível: %s", label(housingLabels, want))
	}
	return mismatch("O tutor prefere %s, mas você mora em %s",
		label(housingLabels, want), label(housingLabels, *a.HousingType))
}

// triStateTexts holds the phrases for a yes/no household trait.
type triStateTexts struct {
	indifferent string
	unknown     string
	matchYes    string
	matchNo     string
	wantYes     string
	wantNo      string
}

func evalTriState(want *models.TriState, have *bool, t triStateTexts) (Outcome, bool) {
	if want == nil {
		return Outcome{}, false
	}
	if *want == models.TriStateIndifferent {
		return match("%s", t.indifferent)
	}
	if have == nil {
		return neutral("%s", t.unknown)
	}
	switch *want {
	case models.TriStateYes:
		if *have {
			return match("%s", t.matchYes)
		}
		return mismatch("%s", t.wantYes)
	case models.TriStateNo:
		if !*have {
			return match("%s", t.matchNo)
		}
		return mismatch("%s", t.wantNo)
	default:
		return mismatch("Preferência do tutor não reconhecida: %s", string(*want))
	}
}

func evalYard(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	return evalTriState(p.PreferredTutorHasYard, a.HasYard, triStateTexts{
		indifferent: "O tutor não se importa com quintal",
		unknown:     "Você não informou se tem quintal",
		matchYes:    "Você tem quintal, como o tutor prefere",
		matchNo:     "Você não tem quintal, como o tutor prefere",
		wantYes:     "O tutor prefere um lar com quintal",
		wantNo:      "O tutor prefere um lar sem quintal",
	})
}

func evalOtherPets(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	return evalTriState(p.PreferredTutorHasOtherPets, a.HasOtherPets, triStateTexts{
		indifferent: "O tutor não se importa com outros animais na casa",
		unknown:     "Você não informou se tem outros animais",
		matchYes:    "Você tem outros animais, como o tutor prefere",
		matchNo:     "Você não tem outros animais, como o tutor prefere",
		wantYes:     "O tutor prefere um lar que já tenha outros animais",
		wantNo:      "O tutor prefere um lar sem outros animais",
	})
}

func evalChildren(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	return evalTriState(p.PreferredTutorHasChildren, a.HasChildren, triStateTexts{
		indifferent: "O tutor não se importa com crianças na casa",
		unknown:     "Você não informou se há crianças na casa",
		matchYes:    "Há crianças na casa, como o tutor prefere",
		matchNo:     "Não há crianças na casa, como o tutor prefere",
		wantYes:     "O tutor prefere um lar com crianças",
		wantNo:      "O tutor prefere um lar sem crianças",
	})
}

func evalTimeAtHome(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.PreferredTutorTimeAtHome == nil {
		return Outcome{}, false
	}
	want := *p.PreferredTutorTimeAtHome
	if want == models.TimeAtHomeIndifferent {
		return match("O tutor não se importa com o tempo que você passa em casa")
	}
	if a.TimeAtHome == nil {
		return neutral("Tempo em casa não informado no seu perfil")
	}
	if *a.TimeAtHome == want {
		return match("Tempo em casa compatível: %s", label(timeAtHomeLabels, want))
	}
	return mismatch("O tutor prefere alguém em casa %s, você informou %s",
		strings.ToLower(label(timeAtHomeLabels, want)), strings.ToLower(label(timeAtHomeLabels, *a.TimeAtHome)))
}

func evalPetsAllowed(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.PreferredTutorPetsAllowedAtHome == nil {
		return Outcome{}, false
	}
	want := *p.PreferredTutorPetsAllowedAtHome
	if a.PetsAllowedAtHome == nil {
		return neutral("Você não informou se animais são permitidos na sua residência")
	}
	have := *a.PetsAllowedAtHome
	switch {
	case have == want:
		return match("Permissão para animais na residência compatível")
	case want == models.PetsAllowedYes && (have == models.PetsAllowedNo || have == models.PetsAllowedUnsure):
		return mismatch("O tutor exige que animais sejam permitidos na residência (você informou: %s)",
			label(petsAllowedLabels, have))
	case want == models.PetsAllowedNo && have == models.PetsAllowedYes:
		return mismatch("Permissão para animais na residência diferente da esperada pelo tutor")
	default:
		return neutral("Não foi possível confirmar a permissão para animais na residência")
	}
}

func evalExperience(want *models.Experience, have *models.Experience, animal string) (Outcome, bool) {
	if want == nil {
		return Outcome{}, false
	}
	if have == nil {
		return neutral("Experiência com %s não informada no seu perfil", animal)
	}
	if *have == *want || atLeast(experienceRank, *have, *want) {
		return match("Experiência com %s adequada: %s", animal, label(experienceLabels, *have))
	}
	return mismatch("O tutor prefere alguém que %s %s (você: %s)",
		strings.ToLower(label(experienceLabels, *want)), animal, strings.ToLower(label(experienceLabels, *have)))
}

func evalDogExperience(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	return evalExperience(p.PreferredTutorDogExperience, a.DogExperience, "cães")
}

func evalCatExperience(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	return evalExperience(p.PreferredTutorCatExperience, a.CatExperience, "gatos")
}

func evalHousehold(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.PreferredTutorHouseholdAgreement == nil {
		return Outcome{}, false
	}
	want := *p.PreferredTutorHouseholdAgreement
	if a.HouseholdAgreement == nil {
		return neutral("Você não informou se todos na casa concordam com a adoção")
	}
	have := *a.HouseholdAgreement
	switch {
	case have == want:
		return match("Acordo da família compatível: %s", label(householdLabels, have))
	case want == models.HouseholdAgreementYes && have == models.HouseholdAgreementDiscussing:
		return mismatch("O tutor prefere que todos na casa já estejam de acordo com a adoção")
	default:
		return neutral("Acordo da família: %s", label(householdLabels, have))
	}
}

func evalSpecies(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.Species == nil || a.SpeciesPreference == nil {
		return Outcome{}, false
	}
	pref := *a.SpeciesPreference
	if pref == models.SpeciesBoth || pref == *p.Species {
		return match("Espécie de interesse: %s", label(speciesLabels, *p.Species))
	}
	return mismatch("Você prefere %s, este animal é %s",
		strings.ToLower(label(speciesLabels, pref)), strings.ToLower(label(speciesLabels, *p.Species)))
}

func evalSex(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.Sex == nil || a.SexPreference == nil {
		return Outcome{}, false
	}
	pref := *a.SexPreference
	if pref == models.SexBoth || pref == *p.Sex {
		return match("Sexo de interesse: %s", label(sexLabels, *p.Sex))
	}
	return mismatch("Você prefere %s, este animal é %s",
		strings.ToLower(label(sexLabels, pref)), strings.ToLower(label(sexLabels, *p.Sex)))
}

func evalSize(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if a.SizePreference == nil || *a.SizePreference == models.SizeBoth || p.Size == nil {
		return Outcome{}, false
	}
	if *a.SizePreference == *p.Size {
		return match("Porte de interesse: %s", label(sizeLabels, *p.Size))
	}
	return mismatch("Você prefere porte %s, este animal é de porte %s",
		strings.ToLower(label(sizeLabels, *a.SizePreference)), strings.ToLower(label(sizeLabels, *p.Size)))
}

func evalEnergy(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.EnergyLevel == nil {
		return Outcome{}, false
	}
	if a.ActivityLevel == nil {
		return neutral("Seu nível de atividade não foi informado")
	}
	if atLeast(energyRank, *a.ActivityLevel, *p.EnergyLevel) {
		return match("Seu nível de atividade acompanha a energia do animal (%s)",
			strings.ToLower(label(energyLabels, *p.EnergyLevel)))
	}
	return mismatch("O animal tem energia %s e seu nível de atividade é %s",
		strings.ToLower(label(energyLabels, *p.EnergyLevel)), strings.ToLower(label(energyLabels, *a.ActivityLevel)))
}

func evalAge(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if a.PreferredPetAge == nil || *a.PreferredPetAge == models.AgeAny || p.Age == nil {
		return Outcome{}, false
	}
	bracket := AgeBracketFor(*p.Age)
	if bracket == *a.PreferredPetAge {
		return match("Faixa etária de interesse: %s", label(ageLabels, bracket))
	}
	return mismatch("Você prefere %s, este animal é %s",
		strings.ToLower(label(ageLabels, *a.PreferredPetAge)), strings.ToLower(label(ageLabels, bracket)))
}

func needsVetCare(p *models.PetTutorPreferences) bool {
	if p.SpecialNeeds != nil && *p.SpecialNeeds {
		return true
	}
	return p.HealthNotes != nil && strings.TrimSpace(*p.HealthNotes) != ""
}

func evalVetCare(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if !needsVetCare(p) {
		return Outcome{}, false
	}
	if a.VetCareCommitment == nil {
		return neutral("Você não informou se pode manter acompanhamento veterinário")
	}
	if *a.VetCareCommitment == models.VetCommitmentYes {
		return match("Você se compromete com os cuidados veterinários que este animal precisa")
	}
	return mismatch("Este animal precisa de acompanhamento veterinário contínuo")
}

func evalWalkFrequency(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.PreferredTutorWalkFrequency == nil {
		return Outcome{}, false
	}
	want := *p.PreferredTutorWalkFrequency
	if want == models.WalkIndifferent || want == models.WalkNotApplicable {
		return match("O tutor não exige uma frequência de passeios")
	}
	if a.WalkFrequency == nil {
		return neutral("Frequência de passeios não informada no seu perfil")
	}
	have := *a.WalkFrequency
	if have == models.WalkNotApplicable {
		return neutral("O tutor espera passeios %s", strings.ToLower(label(walkLabels, want)))
	}
	if have == want || atLeast(walkRank, have, want) {
		return match("Frequência de passeios adequada: %s", label(walkLabels, have))
	}
	return mismatch("O tutor espera passeios %s, você informou %s",
		strings.ToLower(label(walkLabels, want)), strings.ToLower(label(walkLabels, have)))
}

func evalBudget(a *models.AdopterProfile, p *models.PetTutorPreferences) (Outcome, bool) {
	if p.HasOngoingCosts == nil || !*p.HasOngoingCosts {
		return Outcome{}, false
	}
	if a.MonthlyBudget == nil {
		return neutral("Orçamento mensal para o animal não informado")
	}
	switch *a.MonthlyBudget {
	case models.BudgetHigh, models.BudgetMedium:
		return match("Seu orçamento mensal cobre os custos contínuos do animal")
	default:
		return mismatch("Este animal tem custos contínuos e seu orçamento mensal é %s",
			strings.ToLower(label(budgetLabels, *a.MonthlyBudget)))
	}
}

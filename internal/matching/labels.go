package matching

import "adoption-workers/internal/models"

// Display labels used in criterion messages. A code missing from its table is
// printed as-is.

var housingLabels = map[models.HousingType]string{
	models.HousingHouse:       "Casa",
	models.HousingApartment:   "Apartamento",
	models.HousingIndifferent: "Indiferente",
}

var timeAtHomeLabels = map[models.TimeAtHome]string{
	models.TimeAtHomeMostDay:     "Maior parte do dia",
	models.TimeAtHomeHalfDay:     "Meio período",
	models.TimeAtHomeLittle:      "Pouco tempo",
	models.TimeAtHomeIndifferent: "Indiferente",
}

var petsAllowedLabels = map[models.PetsAllowed]string{
	models.PetsAllowedYes:    "Sim",
	models.PetsAllowedNo:     "Não",
	models.PetsAllowedUnsure: "Não tenho certeza",
}

var experienceLabels = map[models.Experience]string{
	models.ExperienceNever:     "Nunca teve",
	models.ExperienceHadBefore: "Já teve",
	models.ExperienceHaveNow:   "Tem atualmente",
}

var householdLabels = map[models.HouseholdAgreement]string{
	models.HouseholdAgreementYes:        "Todos de acordo",
	models.HouseholdAgreementDiscussing: "Ainda conversando",
}

var speciesLabels = map[models.Species]string{
	models.SpeciesDog:  "Cachorro",
	models.SpeciesCat:  "Gato",
	models.SpeciesBoth: "Ambos",
}

var sexLabels = map[models.Sex]string{
	models.SexMale:   "Macho",
	models.SexFemale: "Fêmea",
	models.SexBoth:   "Ambos",
}

var sizeLabels = map[models.Size]string{
	models.SizeSmall:  "Pequeno",
	models.SizeMedium: "Médio",
	models.SizeLarge:  "Grande",
	models.SizeBoth:   "Ambos",
}

var energyLabels = map[models.EnergyLevel]string{
	models.EnergyLow:    "Baixo",
	models.EnergyMedium: "Médio",
	models.EnergyHigh:   "Alto",
}

var ageLabels = map[models.AgeBracket]string{
	models.AgePuppy:  "Filhote",
	models.AgeAdult:  "Adulto",
	models.AgeSenior: "Idoso",
	models.AgeAny:    "Qualquer idade",
}

var walkLabels = map[models.WalkFrequency]string{
	models.WalkRarely:        "Raramente",
	models.WalkFewTimesWeek:  "Algumas vezes por semana",
	models.WalkDaily:         "Diariamente",
	models.WalkNotApplicable: "Não se aplica",
	models.WalkIndifferent:   "Indiferente",
}

var budgetLabels = map[models.Budget]string{
	models.BudgetLow:    "Baixo",
	models.BudgetMedium: "Médio",
	models.BudgetHigh:   "Alto",
}

func label[T ~string](table map[T]string, code T) string {
	if l, ok := table[code]; ok {
		return l
	}
	return string(code)
}

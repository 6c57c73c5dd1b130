package matching

import "adoption-workers/internal/models"

var experienceRank = map[models.Experience]int{
	models.ExperienceNever:     0,
	models.ExperienceHadBefore: 1,
	models.ExperienceHaveNow:   2,
}

var energyRank = map[models.EnergyLevel]int{
	models.EnergyLow:    0,
	models.EnergyMedium: 1,
	models.EnergyHigh:   2,
}

var walkRank = map[models.WalkFrequency]int{
	models.WalkRarely:       0,
	models.WalkFewTimesWeek: 1,
	models.WalkDaily:        2,
}

// atLeast reports whether have reaches the required rank. Codes missing from
// the ordering never satisfy the requirement.
func atLeast[T comparable](ranks map[T]int, have, required T) bool {
	h, ok := ranks[have]
	if !ok {
		return false
	}
	r, ok := ranks[required]
	if !ok {
		return false
	}
	return h >= r
}

// AgeBracketFor buckets an age in years: under 2 is a puppy, 2 through 7 an adult, older a senior.
func AgeBracketFor(years float64) models.AgeBracket {
	switch {
	case years < 2:
		return models.AgePuppy
	case years <= 7:
		return models.AgeAdult
	default:
		return models.AgeSenior
	}
}

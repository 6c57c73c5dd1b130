// Package store reads the adoption data the workers score and rank:
// animals with their tutor preferences, adopter screening profiles,
// favorites and conversations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "adoption-workers/internal/common/errors"
	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/models"
)

var (
	ErrAnimalNotFound  = errors.New("animal not found")
	ErrAdopterNotFound = errors.New("adopter profile not found")
)

// PostgresStore runs read-only queries against the adoption schema.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "postgres-store"}),
	}
}

const animalQuery = `
	SELECT id, owner_id, name,
	       preferred_tutor_housing_type, preferred_tutor_has_yard, preferred_tutor_has_other_pets,
	       preferred_tutor_has_children, preferred_tutor_time_at_home, preferred_tutor_pets_allowed_at_home,
	       preferred_tutor_dog_experience, preferred_tutor_cat_experience, preferred_tutor_household_agreement,
	       preferred_tutor_walk_frequency, has_ongoing_costs,
	       species, sex, size, age_years, energy_level, special_needs, health_notes
	FROM animals
	WHERE id = $1 AND deleted_at IS NULL`

// GetAnimal returns ErrAnimalNotFound when no live animal has this id.
func (s *PostgresStore) GetAnimal(ctx context.Context, animalID string) (*models.Animal, error) {
	var a models.Animal
	p := &a.Preferences
	err := s.db.QueryRowContext(ctx, animalQuery, animalID).Scan(
		&a.ID, &a.OwnerID, &a.Name,
		&p.PreferredTutorHousingType, &p.PreferredTutorHasYard, &p.PreferredTutorHasOtherPets,
		&p.PreferredTutorHasChildren, &p.PreferredTutorTimeAtHome, &p.PreferredTutorPetsAllowedAtHome,
		&p.PreferredTutorDogExperience, &p.PreferredTutorCatExperience, &p.PreferredTutorHouseholdAgreement,
		&p.PreferredTutorWalkFrequency, &p.HasOngoingCosts,
		&p.Species, &p.Sex, &p.Size, &p.Age, &p.EnergyLevel, &p.SpecialNeeds, &p.HealthNotes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnimalNotFound
	}
	if err != nil {
		return nil, queryError(ctx, "get_animal", err)
	}
	return &a, nil
}

const adopterProfileQuery = `
	SELECT housing_type, has_yard, has_other_pets, has_children, time_at_home,
	       pets_allowed_at_home, dog_experience, cat_experience, household_agreement, why_adopt,
	       species_preference, size_preference, sex_preference, activity_level, preferred_pet_age,
	       vet_care_commitment, walk_frequency, monthly_budget
	FROM adopter_profiles
	WHERE user_id = $1`

// GetAdopterProfile returns ErrAdopterNotFound when the adopter never filled in a profile.
func (s *PostgresStore) GetAdopterProfile(ctx context.Context, adopterID string) (*models.AdopterProfile, error) {
	var p models.AdopterProfile
	err := s.db.QueryRowContext(ctx, adopterProfileQuery, adopterID).Scan(
		&p.HousingType, &p.HasYard, &p.HasOtherPets, &p.HasChildren, &p.TimeAtHome,
		&p.PetsAllowedAtHome, &p.DogExperience, &p.CatExperience, &p.HouseholdAgreement, &p.WhyAdopt,
		&p.SpeciesPreference, &p.SizePreference, &p.SexPreference, &p.ActivityLevel, &p.PreferredPetAge,
		&p.VetCareCommitment, &p.WalkFrequency, &p.MonthlyBudget,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdopterNotFound
	}
	if err != nil {
		return nil, queryError(ctx, "get_adopter_profile", err)
	}
	return &p, nil
}

const interestedAdoptersQuery = `
	SELECT f.user_id, u.display_name, u.avatar_url, u.phone, u.city, f.created_at
	FROM favorites f
	JOIN users u ON u.id = f.user_id
	WHERE f.animal_id = $1
	ORDER BY f.created_at ASC, f.user_id ASC`

// ListInterestedAdopters returns every favorite of the animal, oldest first.
// Duplicates are left to the ranker.
func (s *PostgresStore) ListInterestedAdopters(ctx context.Context, animalID string) ([]models.InterestedAdopter, error) {
	rows, err := s.db.QueryContext(ctx, interestedAdoptersQuery, animalID)
	if err != nil {
		return nil, queryError(ctx, "list_interested_adopters", err)
	}
	defer rows.Close()

	adopters := []models.InterestedAdopter{}
	for rows.Next() {
		var a models.InterestedAdopter
		var displayName sql.NullString
		if err := rows.Scan(&a.AdopterID, &displayName, &a.AvatarURL, &a.Phone, &a.City, &a.FavoritedAt); err != nil {
			return nil, queryError(ctx, "list_interested_adopters", err)
		}
		a.DisplayName = displayName.String
		adopters = append(adopters, a)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "list_interested_adopters", err)
	}
	return adopters, nil
}

const conversationsQuery = `
	SELECT adopter_id, id
	FROM conversations
	WHERE animal_id = $1 AND tutor_id = $2
	ORDER BY created_at ASC`

// ConversationsByAdopter maps adopter id to the first conversation the tutor
// has with them about this animal.
func (s *PostgresStore) ConversationsByAdopter(ctx context.Context, animalID, tutorID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, conversationsQuery, animalID, tutorID)
	if err != nil {
		return nil, queryError(ctx, "conversations_by_adopter", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var adopterID, conversationID string
		if err := rows.Scan(&adopterID, &conversationID); err != nil {
			return nil, queryError(ctx, "conversations_by_adopter", err)
		}
		if _, exists := out[adopterID]; !exists {
			out[adopterID] = conversationID
		}
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "conversations_by_adopter", err)
	}
	return out, nil
}

func queryError(ctx context.Context, query string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewQueryTimeoutError(query)
	}
	if errors.Is(err, sql.ErrConnDone) {
		return apperrors.NewDatabaseConnectionFailedError(fmt.Errorf("%s: %w", query, err))
	}
	return apperrors.NewQueryExecutionFailedError(query, err)
}

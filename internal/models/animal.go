// internal/models/animal.go
package models

import "time"

type Animal struct {
	ID          string              `json:"id"`
	OwnerID     string              `json:"ownerId"`
	Name        string              `json:"name"`
	Preferences PetTutorPreferences `json:"preferences"`
}

// InterestedAdopter is one favorite row joined with the adopter's user record.
type InterestedAdopter struct {
	AdopterID   string    `json:"adopterId"`
	DisplayName string    `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	City        *string   `json:"city,omitempty"`
	FavoritedAt time.Time `json:"favoritedAt"`
}

// AnimalListing is an available animal as stored in the search index.
type AnimalListing struct {
	ID          string              `json:"id"`
	OwnerID     string              `json:"ownerId"`
	Name        string              `json:"name"`
	PhotoURL    *string             `json:"photoUrl,omitempty"`
	Status      string              `json:"status"`
	Preferences PetTutorPreferences `json:"preferences"`
}

const ListingStatusAvailable = "AVAILABLE"

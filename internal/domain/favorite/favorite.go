// Package favorite models the pets an adopter has marked as liked.
package favorite

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links one adopter to one pet. The pair is unique.
type Favorite struct {
	id        uuid.UUID
	adopterID uuid.UUID
	petID     uuid.UUID
	createdAt time.Time
}

// NewFavorite creates a like for petID by adopterID.
func NewFavorite(adopterID, petID uuid.UUID, now time.Time) *Favorite {
	return &Favorite{
		id:        uuid.New(),
		adopterID: adopterID,
		petID:     petID,
		createdAt: now.UTC(),
	}
}

// Reconstruct rebuilds a Favorite from persistence data.
func Reconstruct(id, adopterID, petID uuid.UUID, createdAt time.Time) *Favorite {
	return &Favorite{id: id, adopterID: adopterID, petID: petID, createdAt: createdAt}
}

func (f *Favorite) ID() uuid.UUID        { return f.id }
func (f *Favorite) AdopterID() uuid.UUID { return f.adopterID }
func (f *Favorite) PetID() uuid.UUID     { return f.petID }
func (f *Favorite) CreatedAt() time.Time { return f.createdAt }

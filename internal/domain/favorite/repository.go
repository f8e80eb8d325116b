package favorite

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for liked pets.
type Repository interface {
	// Add inserts a like; an existing (adopter, pet) pair yields a Conflict error.
	Add(ctx context.Context, f *Favorite) error

	// Remove deletes the like; a missing pair yields a NotFound error.
	Remove(ctx context.Context, adopterID, petID uuid.UUID) error

	// FindByAdopter returns the adopter's likes, newest first.
	FindByAdopter(ctx context.Context, adopterID uuid.UUID) ([]*Favorite, error)
}

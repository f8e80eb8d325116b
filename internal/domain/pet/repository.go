package pet

import (
	"context"

	"github.com/google/uuid"
)

// PetRepository defines persistence operations for the adoption catalog.
type PetRepository interface {
	// FindByID returns a NotFound error when no pet has the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)

	// FindAll returns every pet, newest first.
	FindAll(ctx context.Context) ([]*Pet, error)

	// FindFiltered returns one page of pets matching filter, newest first.
	FindFiltered(ctx context.Context, filter SearchFilter, offset, limit int) ([]*Pet, error)

	// Save inserts a new pet.
	Save(ctx context.Context, pet *Pet) error

	// Update replaces every stored field of an existing pet.
	Update(ctx context.Context, pet *Pet) error

	// Delete removes a pet permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatus sets the status unconditionally.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// CompareAndSetStatus sets the status only if it currently equals from.
	// It returns an InvalidState error when the stored status differs.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to Status) error
}

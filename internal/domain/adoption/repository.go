package adoption

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
)

// RequestRepository defines the persistence contract for the request ledger.
type RequestRepository interface {
	// Save inserts a new request.
	Save(ctx context.Context, req *Request) error

	// FindByID returns a NotFound error when no request has the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// UpdateStatus moves a request from one status to another and stamps
	// processedAt. It returns an InvalidState error when the stored status is
	// not from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, processedAt time.Time) error

	// FindByStatus returns requests in the given status, most recent first.
	FindByStatus(ctx context.Context, status Status) ([]*Request, error)

	// FindByAdopter returns an adopter's requests, most recent first.
	FindByAdopter(ctx context.Context, adopterID uuid.UUID) ([]*Request, error)
}

// Tx exposes the repositories bound to one transaction.
type Tx interface {
	Pets() pet.PetRepository
	Requests() RequestRepository
}

// Transactor runs fn inside a single transaction. If fn returns an error,
// none of its writes become visible.
type Transactor interface {
	Transact(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

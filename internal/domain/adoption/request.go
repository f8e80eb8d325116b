// Package adoption models adoption requests and the ledger that stores them.
package adoption

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// Request is an adopter's claim against a specific pet.
type Request struct {
	id          uuid.UUID
	petID       uuid.UUID
	adopterID   uuid.UUID
	message     string
	status      Status
	requestedAt time.Time
	processedAt *time.Time
}

// NewRequest creates a pending request stamped with requestedAt = now.
func NewRequest(petID, adopterID uuid.UUID, message string, now time.Time) (*Request, error) {
	if petID == uuid.Nil {
		return nil, apperr.NewValidationError("pet ID is required")
	}
	if adopterID == uuid.Nil {
		return nil, apperr.NewValidationError("adopter ID is required")
	}
	return &Request{
		id:          uuid.New(),
		petID:       petID,
		adopterID:   adopterID,
		message:     message,
		status:      StatusPending,
		requestedAt: now.UTC(),
	}, nil
}

// ReconstructRequest rebuilds a Request from persistence data (no validation).
func ReconstructRequest(
	id, petID, adopterID uuid.UUID,
	message string,
	status Status,
	requestedAt time.Time,
	processedAt *time.Time,
) *Request {
	return &Request{
		id:          id,
		petID:       petID,
		adopterID:   adopterID,
		message:     message,
		status:      status,
		requestedAt: requestedAt,
		processedAt: processedAt,
	}
}

// --- Getters ---

// ID returns the request's unique identifier.
func (r *Request) ID() uuid.UUID { return r.id }

// PetID returns the requested pet's ID.
func (r *Request) PetID() uuid.UUID { return r.petID }

// AdopterID returns the requesting adopter's user ID.
func (r *Request) AdopterID() uuid.UUID { return r.adopterID }

// Message returns the adopter's free-text message.
func (r *Request) Message() string { return r.message }

// Status returns the current request status.
func (r *Request) Status() Status { return r.status }

// RequestedAt returns the submission time.
func (r *Request) RequestedAt() time.Time { return r.requestedAt }

// ProcessedAt returns the resolution time, or nil while pending.
func (r *Request) ProcessedAt() *time.Time { return r.processedAt }

// --- Behavior ---

// Approve transitions the request from pending to approved.
func (r *Request) Approve(now time.Time) error {
	return r.resolve(StatusApproved, now)
}

// Reject transitions the request from pending to rejected.
func (r *Request) Reject(now time.Time) error {
	return r.resolve(StatusRejected, now)
}

func (r *Request) resolve(target Status, now time.Time) error {
	if !r.status.CanTransitionTo(target) {
		return apperr.NewInvalidStateError(string(r.status), string(target))
	}
	processed := now.UTC()
	r.status = target
	r.processedAt = &processed
	return nil
}

// Clone returns an independent copy of the request.
func (r *Request) Clone() *Request {
	c := *r
	if r.processedAt != nil {
		t := *r.processedAt
		c.processedAt = &t
	}
	return &c
}

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	adoptionDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/adoption"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
)

// SubmitAdoptionRequest is the request DTO for asking to adopt a pet.
type SubmitAdoptionRequest struct {
	PetID   uuid.UUID `json:"pet_id" binding:"required"`
	Message string    `json:"message"`
}

// AdoptionRequestDTO is the response representation of an adoption request.
type AdoptionRequestDTO struct {
	ID          uuid.UUID  `json:"id"`
	PetID       uuid.UUID  `json:"pet_id"`
	AdopterID   uuid.UUID  `json:"adopter_id"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// AdoptionService drives the coupled pet and request state machines.
type AdoptionService struct {
	transactor adoptionDomain.Transactor
	requests   adoptionDomain.RequestRepository
	recorder   transitionRecorder
	logger     *zap.Logger
	now        func() time.Time
}

// NewAdoptionService creates a new AdoptionService. A nil publisher discards events.
func NewAdoptionService(
	transactor adoptionDomain.Transactor,
	requests adoptionDomain.RequestRepository,
	publisher TransitionPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AdoptionService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &AdoptionService{
		transactor: transactor,
		requests:   requests,
		recorder:   transitionRecorder{publisher: publisher, metrics: m, logger: logger},
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitRequest files a pending request against an available pet and moves
// the pet to pending, atomically.
func (s *AdoptionService) SubmitRequest(ctx context.Context, petID, adopterID uuid.UUID, message string) (uuid.UUID, error) {
	now := s.now().UTC()
	var req *adoptionDomain.Request

	err := s.transactor.Transact(ctx, func(ctx context.Context, tx adoptionDomain.Tx) error {
		pet, err := tx.Pets().FindByID(ctx, petID)
		if err != nil {
			return err
		}
		if !pet.IsAvailable() {
			return errPetNotAvailable()
		}

		req, err = adoptionDomain.NewRequest(petID, adopterID, message, now)
		if err != nil {
			return err
		}

		// Another submission may have claimed the pet since it was read.
		if err := tx.Pets().CompareAndSetStatus(ctx, petID, petDomain.StatusAvailable, petDomain.StatusPending); err != nil {
			if apperr.IsInvalidState(err) {
				return errPetNotAvailable()
			}
			return err
		}
		return tx.Requests().Save(ctx, req)
	})
	if err != nil {
		s.recorder.failed("submit", err)
		return uuid.Nil, err
	}

	s.recorder.emit(ctx,
		TransitionEvent{Entity: EntityAdoptionRequest, ID: req.ID(), From: "", To: string(adoptionDomain.StatusPending), At: now},
		TransitionEvent{Entity: EntityPet, ID: petID, From: string(petDomain.StatusAvailable), To: string(petDomain.StatusPending), At: now},
	)
	return req.ID(), nil
}

// ApproveRequest approves a pending request and marks its pet adopted.
func (s *AdoptionService) ApproveRequest(ctx context.Context, requestID uuid.UUID) error {
	return s.resolve(ctx, "approve", requestID, (*adoptionDomain.Request).Approve, petDomain.StatusAdopted)
}

// RejectRequest rejects a pending request and returns its pet to the catalog.
func (s *AdoptionService) RejectRequest(ctx context.Context, requestID uuid.UUID) error {
	return s.resolve(ctx, "reject", requestID, (*adoptionDomain.Request).Reject, petDomain.StatusAvailable)
}

// resolve applies a terminal request transition and sets the pet status
// unconditionally; admin edits may have moved the pet in the meantime.
func (s *AdoptionService) resolve(
	ctx context.Context,
	operation string,
	requestID uuid.UUID,
	apply func(*adoptionDomain.Request, time.Time) error,
	petTarget petDomain.Status,
) error {
	now := s.now().UTC()
	var events []TransitionEvent

	err := s.transactor.Transact(ctx, func(ctx context.Context, tx adoptionDomain.Tx) error {
		events = events[:0]

		req, err := tx.Requests().FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		from := req.Status()
		if err := apply(req, now); err != nil {
			return err
		}
		if err := tx.Requests().UpdateStatus(ctx, requestID, from, req.Status(), now); err != nil {
			return err
		}

		pet, err := tx.Pets().FindByID(ctx, req.PetID())
		if err != nil {
			return err
		}
		if err := tx.Pets().UpdateStatus(ctx, pet.ID(), petTarget); err != nil {
			return err
		}

		events = append(events,
			TransitionEvent{Entity: EntityAdoptionRequest, ID: req.ID(), From: string(from), To: string(req.Status()), At: now},
			TransitionEvent{Entity: EntityPet, ID: pet.ID(), From: string(pet.Status()), To: string(petTarget), At: now},
		)
		return nil
	})
	if err != nil {
		s.recorder.failed(operation, err)
		return err
	}

	s.recorder.emit(ctx, events...)
	return nil
}

// ListPending returns every pending request, most recent first.
func (s *AdoptionService) ListPending(ctx context.Context) ([]AdoptionRequestDTO, error) {
	reqs, err := s.requests.FindByStatus(ctx, adoptionDomain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return toAdoptionRequestDTOs(reqs), nil
}

// ListByAdopter returns an adopter's requests, most recent first.
func (s *AdoptionService) ListByAdopter(ctx context.Context, adopterID uuid.UUID) ([]AdoptionRequestDTO, error) {
	reqs, err := s.requests.FindByAdopter(ctx, adopterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adopter requests: %w", err)
	}
	return toAdoptionRequestDTOs(reqs), nil
}

// GetRequest retrieves a single request.
func (s *AdoptionService) GetRequest(ctx context.Context, requestID uuid.UUID) (*AdoptionRequestDTO, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	result := toAdoptionRequestDTO(req)
	return &result, nil
}

func errPetNotAvailable() error {
	return apperr.NewInvalidStateMessage("pet is not available for adoption")
}

func toAdoptionRequestDTO(r *adoptionDomain.Request) AdoptionRequestDTO {
	return AdoptionRequestDTO{
		ID:          r.ID(),
		PetID:       r.PetID(),
		AdopterID:   r.AdopterID(),
		Message:     r.Message(),
		Status:      string(r.Status()),
		RequestedAt: r.RequestedAt(),
		ProcessedAt: r.ProcessedAt(),
	}
}

func toAdoptionRequestDTOs(reqs []*adoptionDomain.Request) []AdoptionRequestDTO {
	dtos := make([]AdoptionRequestDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = toAdoptionRequestDTO(r)
	}
	return dtos
}

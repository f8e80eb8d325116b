package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
)

// PetRequest is the request DTO for creating or replacing a catalog entry.
type PetRequest struct {
	Name        string `json:"name" binding:"required"`
	Species     string `json:"species" binding:"required"`
	Breed       string `json:"breed"`
	AgeYears    int    `json:"age_years"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
	Status      string `json:"status"`
}

// PetDTO is the API response representation of a catalog entry.
type PetDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	AgeYears    int       `json:"age_years"`
	Description string    `json:"description,omitempty"`
	ImageRef    string    `json:"image_ref,omitempty"`
	Status      string    `json:"status"`
	AdoptionFee float64   `json:"adoption_fee"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchPage is one page of catalog results. HasNext is true when the page
// came back full; it is a hint, not an exact count.
type SearchPage struct {
	Items    []PetDTO `json:"items"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	HasNext  bool     `json:"has_next"`
}

// CatalogService implements catalog search and pet administration.
type CatalogService struct {
	repo    petDomain.PetRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo petDomain.PetRepository, m *metrics.Metrics, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, metrics: m, logger: logger}
}

// Search returns one page of pets matching filter, newest first.
func (s *CatalogService) Search(ctx context.Context, filter petDomain.SearchFilter, page, pageSize int) (*SearchPage, error) {
	if page < 0 {
		return nil, apperr.NewValidationError("page must be a non-negative integer")
	}
	if pageSize < 0 {
		return nil, apperr.NewValidationError("page size must be a non-negative integer")
	}
	if pageSize > 0 && page > math.MaxInt/pageSize {
		return nil, apperr.NewValidationError("page is out of range")
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	pets, err := s.repo.FindFiltered(ctx, filter, page*pageSize, pageSize)
	s.metrics.CatalogSearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	s.metrics.CatalogSearchResultSize.Observe(float64(len(pets)))

	return &SearchPage{
		Items:    toPetDTOs(pets),
		Page:     page,
		PageSize: pageSize,
		HasNext:  len(pets) == pageSize,
	}, nil
}

// CreatePet adds a pet to the catalog. An empty status means available.
func (s *CatalogService) CreatePet(ctx context.Context, req PetRequest) (*PetDTO, error) {
	attrs, err := toAttributes(req)
	if err != nil {
		return nil, err
	}
	pet, err := petDomain.NewPet(attrs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet listed",
		zap.String("pet_id", pet.ID().String()),
		zap.String("species", string(pet.Species())),
		zap.String("status", string(pet.Status())),
	)
	result := toPetDTO(pet)
	return &result, nil
}

// GetPet retrieves a pet by ID.
func (s *CatalogService) GetPet(ctx context.Context, petID uuid.UUID) (*PetDTO, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	result := toPetDTO(pet)
	return &result, nil
}

// UpdatePet replaces every editable field of a pet, status included.
func (s *CatalogService) UpdatePet(ctx context.Context, petID uuid.UUID, req PetRequest) (*PetDTO, error) {
	attrs, err := toAttributes(req)
	if err != nil {
		return nil, err
	}

	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	previous := pet.Status()
	if attrs.Status == "" {
		attrs.Status = previous
	}
	if err := pet.Replace(attrs); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, err
	}

	if previous != pet.Status() {
		s.logger.Info("pet status overridden",
			zap.String("pet_id", petID.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(pet.Status())),
		)
	}
	result := toPetDTO(pet)
	return &result, nil
}

// DeletePet removes a pet permanently. Requests referencing it are kept.
func (s *CatalogService) DeletePet(ctx context.Context, petID uuid.UUID) error {
	if err := s.repo.Delete(ctx, petID); err != nil {
		return err
	}
	s.logger.Info("pet deleted", zap.String("pet_id", petID.String()))
	return nil
}

// ListAll returns the whole catalog, newest first.
func (s *CatalogService) ListAll(ctx context.Context) ([]PetDTO, error) {
	pets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return toPetDTOs(pets), nil
}

func toAttributes(req PetRequest) (petDomain.Attributes, error) {
	species, err := petDomain.ParseSpecies(req.Species)
	if err != nil {
		return petDomain.Attributes{}, apperr.NewValidationError(err.Error())
	}

	var status petDomain.Status
	if req.Status != "" {
		status, err = petDomain.ParseStatus(req.Status)
		if err != nil {
			return petDomain.Attributes{}, apperr.NewValidationError(err.Error())
		}
	}

	return petDomain.Attributes{
		Name:        req.Name,
		Species:     species,
		Breed:       req.Breed,
		AgeYears:    req.AgeYears,
		Description: req.Description,
		ImageRef:    req.ImageRef,
		Status:      status,
	}, nil
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	return PetDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Species:     string(p.Species()),
		Breed:       p.Breed(),
		AgeYears:    p.AgeYears(),
		Description: p.Description(),
		ImageRef:    p.ImageRef(),
		Status:      string(p.Status()),
		AdoptionFee: p.AdoptionFee(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPetDTOs(pets []*petDomain.Pet) []PetDTO {
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return dtos
}

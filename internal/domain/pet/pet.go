package pet

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// Pet is the aggregate root for an animal listed in the adoption catalog.
type Pet struct {
	id          uuid.UUID
	name        string
	species     Species
	breed       string
	ageYears    int
	description string
	imageRef    string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// Attributes are the admin-editable fields of a pet.
type Attributes struct {
	Name        string
	Species     Species
	Breed       string
	AgeYears    int
	Description string
	ImageRef    string
	Status      Status
}

func (a Attributes) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return apperr.NewValidationError("pet name is required")
	}
	if !a.Species.IsValid() {
		return apperr.NewValidationError("invalid species: " + string(a.Species))
	}
	if a.AgeYears < 0 {
		return apperr.NewValidationError("age must be a non-negative integer")
	}
	if !a.Status.IsValid() {
		return apperr.NewValidationError("invalid pet status: " + string(a.Status))
	}
	return nil
}

// NewPet creates a catalog entry. An empty status defaults to available.
func NewPet(attrs Attributes) (*Pet, error) {
	if attrs.Status == "" {
		attrs.Status = StatusAvailable
	}
	if err := attrs.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Pet{
		id:          uuid.New(),
		name:        strings.TrimSpace(attrs.Name),
		species:     attrs.Species,
		breed:       strings.TrimSpace(attrs.Breed),
		ageYears:    attrs.AgeYears,
		description: attrs.Description,
		imageRef:    attrs.ImageRef,
		status:      attrs.Status,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name string,
	species Species,
	breed string,
	ageYears int,
	description, imageRef string,
	status Status,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:          id,
		name:        name,
		species:     species,
		breed:       breed,
		ageYears:    ageYears,
		description: description,
		imageRef:    imageRef,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID         { return p.id }
func (p *Pet) Name() string          { return p.name }
func (p *Pet) Species() Species      { return p.species }
func (p *Pet) Breed() string         { return p.breed }
func (p *Pet) AgeYears() int         { return p.ageYears }
func (p *Pet) Description() string   { return p.description }
func (p *Pet) ImageRef() string      { return p.imageRef }
func (p *Pet) Status() Status        { return p.status }
func (p *Pet) CreatedAt() time.Time  { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Pet) AdoptionFee() float64  { return p.species.AdoptionFee() }
func (p *Pet) IsAvailable() bool     { return p.status == StatusAvailable }

// --- Behavior ---

// Replace overwrites every admin-editable field, status included. An empty
// image reference keeps the current image.
func (p *Pet) Replace(attrs Attributes) error {
	if err := attrs.validate(); err != nil {
		return err
	}
	p.name = strings.TrimSpace(attrs.Name)
	p.species = attrs.Species
	p.breed = strings.TrimSpace(attrs.Breed)
	p.ageYears = attrs.AgeYears
	p.description = attrs.Description
	if attrs.ImageRef != "" {
		p.imageRef = attrs.ImageRef
	}
	p.status = attrs.Status
	p.updatedAt = time.Now().UTC()
	return nil
}

// Clone returns an independent copy of the pet.
func (p *Pet) Clone() *Pet {
	c := *p
	return &c
}

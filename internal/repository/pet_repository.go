package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Species     string    `gorm:"type:varchar(20);not null;index"`
	Breed       string    `gorm:"type:varchar(100)"`
	AgeYears    int       `gorm:"not null;default:0"`
	Description string    `gorm:"type:text"`
	ImageRef    string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'available';index"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;index"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("Pet", id.String())
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) FindAll(ctx context.Context) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return toPetDomains(models), nil
}

// FindFiltered builds the catalog query: each set filter adds one AND
// predicate, substring filters compare lower-cased columns against a
// lower-cased pattern.
func (r *GormPetRepository) FindFiltered(ctx context.Context, filter petDomain.SearchFilter, offset, limit int) ([]*petDomain.Pet, error) {
	query := r.db.WithContext(ctx).Model(&PetModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Species != nil {
		query = query.Where("species = ?", string(*filter.Species))
	}
	if filter.AgeMin != nil {
		query = query.Where("age_years >= ?", *filter.AgeMin)
	}
	if filter.AgeMax != nil {
		query = query.Where("age_years <= ?", *filter.AgeMax)
	}
	if pattern := filter.BreedPattern(); pattern != "" {
		query = query.Where("LOWER(breed) LIKE ?", containsPattern(pattern))
	}
	if pattern := filter.NamePattern(); pattern != "" {
		query = query.Where("LOWER(name) LIKE ?", containsPattern(pattern))
	}

	var models []PetModel
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search pets: %w", err)
	}
	return toPetDomains(models), nil
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	if err := r.db.WithContext(ctx).Create(toPetModel(pet)).Error; err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	return nil
}

// Update replaces every column, zero values included.
func (r *GormPetRepository) Update(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"species":     model.Species,
			"breed":       model.Breed,
			"age_years":   model.AgeYears,
			"description": model.Description,
			"image_ref":   model.ImageRef,
			"status":      model.Status,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("Pet", model.ID.String())
	}
	return nil
}

func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PetModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("Pet", id.String())
	}
	return nil
}

func (r *GormPetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status petDomain.Status) error {
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update pet status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("Pet", id.String())
	}
	return nil
}

// CompareAndSetStatus is a single guarded UPDATE; concurrent callers racing on
// the same source status see exactly one success.
func (r *GormPetRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to petDomain.Status) error {
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to transition pet status: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return apperr.NewInvalidStateError(string(current.Status()), string(to))
}

// --- Conversions ---

// containsPattern escapes LIKE metacharacters so user input matches literally.
func containsPattern(lowered string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(lowered)
	return "%" + escaped + "%"
}

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
		ID:          p.ID(),
		Name:        p.Name(),
		Species:     string(p.Species()),
		Breed:       p.Breed(),
		AgeYears:    p.AgeYears(),
		Description: p.Description(),
		ImageRef:    p.ImageRef(),
		Status:      string(p.Status()),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID,
		m.Name,
		petDomain.Species(m.Species),
		m.Breed,
		m.AgeYears,
		m.Description,
		m.ImageRef,
		petDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toPetDomains(models []PetModel) []*petDomain.Pet {
	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pets[i] = toPetDomain(&models[i])
	}
	return pets
}

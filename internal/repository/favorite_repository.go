package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	favoriteDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/favorite"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// FavoriteModel is the GORM model for the liked_pets table.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdopterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_liked_pets_adopter_pet"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_liked_pets_adopter_pet"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (FavoriteModel) TableName() string { return "liked_pets" }

// GormFavoriteRepository implements favorite.Repository using GORM.
type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Add relies on the unique (adopter_id, pet_id) index.
func (r *GormFavoriteRepository) Add(ctx context.Context, f *favoriteDomain.Favorite) error {
	model := &FavoriteModel{
		ID:        f.ID(),
		AdopterID: f.AdopterID(),
		PetID:     f.PetID(),
		CreatedAt: f.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflictError("pet already liked")
		}
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

func (r *GormFavoriteRepository) Remove(ctx context.Context, adopterID, petID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("adopter_id = ? AND pet_id = ?", adopterID, petID).
		Delete(&FavoriteModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFoundError("Favorite", petID.String())
	}
	return nil
}

func (r *GormFavoriteRepository) FindByAdopter(ctx context.Context, adopterID uuid.UUID) ([]*favoriteDomain.Favorite, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("adopter_id = ?", adopterID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := make([]*favoriteDomain.Favorite, len(models))
	for i := range models {
		m := &models[i]
		out[i] = favoriteDomain.Reconstruct(m.ID, m.AdopterID, m.PetID, m.CreatedAt)
	}
	return out, nil
}

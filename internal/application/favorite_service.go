package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	favoriteDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/favorite"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// FavoriteDTO is a liked pet as shown on the adopter's favorites page.
type FavoriteDTO struct {
	Pet     PetDTO    `json:"pet"`
	LikedAt time.Time `json:"liked_at"`
}

// FavoriteService lets adopters keep a list of liked pets.
type FavoriteService struct {
	favorites favoriteDomain.Repository
	pets      petDomain.PetRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favorites favoriteDomain.Repository, pets petDomain.PetRepository, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, pets: pets, logger: logger, now: time.Now}
}

// Like marks a pet as liked. Liking it again is a no-op; created reports
// whether a new like was stored.
func (s *FavoriteService) Like(ctx context.Context, adopterID, petID uuid.UUID) (bool, error) {
	if _, err := s.pets.FindByID(ctx, petID); err != nil {
		return false, err
	}

	if err := s.favorites.Add(ctx, favoriteDomain.NewFavorite(adopterID, petID, s.now())); err != nil {
		if apperr.IsConflict(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to like pet: %w", err)
	}

	s.logger.Info("pet liked",
		zap.String("adopter_id", adopterID.String()),
		zap.String("pet_id", petID.String()),
	)
	return true, nil
}

// Unlike removes a like. Removing a like that does not exist is a no-op.
func (s *FavoriteService) Unlike(ctx context.Context, adopterID, petID uuid.UUID) error {
	if err := s.favorites.Remove(ctx, adopterID, petID); err != nil && !apperr.IsNotFound(err) {
		return fmt.Errorf("failed to unlike pet: %w", err)
	}
	return nil
}

// ListFavorites returns the adopter's liked pets, most recently liked first.
// Pets removed from the catalog are skipped.
func (s *FavoriteService) ListFavorites(ctx context.Context, adopterID uuid.UUID) ([]FavoriteDTO, error) {
	favs, err := s.favorites.FindByAdopter(ctx, adopterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := make([]FavoriteDTO, 0, len(favs))
	for _, f := range favs {
		pet, err := s.pets.FindByID(ctx, f.PetID())
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, FavoriteDTO{Pet: toPetDTO(pet), LikedAt: f.CreatedAt()})
	}
	return out, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	favoriteDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/favorite"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

type favoriteKey struct {
	adopterID uuid.UUID
	petID     uuid.UUID
}

type favoriteEntry struct {
	fav *favoriteDomain.Favorite
	seq int64
}

// FavoriteRepository implements favorite.Repository over a Store.
type FavoriteRepository struct {
	store *Store
}

func (r *FavoriteRepository) Add(_ context.Context, f *favoriteDomain.Favorite) error {
	return r.store.write(nil, func() error {
		key := favoriteKey{adopterID: f.AdopterID(), petID: f.PetID()}
		if _, exists := r.store.favorites[key]; exists {
			return apperr.NewConflictError("pet already liked")
		}
		r.store.favorites[key] = favoriteEntry{fav: f, seq: r.store.nextSeq()}
		return nil
	})
}

func (r *FavoriteRepository) Remove(_ context.Context, adopterID, petID uuid.UUID) error {
	return r.store.write(nil, func() error {
		key := favoriteKey{adopterID: adopterID, petID: petID}
		if _, ok := r.store.favorites[key]; !ok {
			return apperr.NewNotFoundError("Favorite", petID.String())
		}
		delete(r.store.favorites, key)
		return nil
	})
}

func (r *FavoriteRepository) FindByAdopter(_ context.Context, adopterID uuid.UUID) ([]*favoriteDomain.Favorite, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := make([]favoriteEntry, 0)
	for key, e := range r.store.favorites {
		if key.adopterID == adopterID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].fav.CreatedAt(), entries[j].fav.CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	out := make([]*favoriteDomain.Favorite, len(entries))
	for i, e := range entries {
		out[i] = e.fav
	}
	return out, nil
}

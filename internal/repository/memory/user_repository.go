package memory

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
)

// UserRepository implements user.UserRepository over a Store.
type UserRepository struct {
	store  *Store
	hasher auth.PasswordHasher
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	normalized := userDomain.NormalizeEmail(email)
	for _, u := range r.store.users {
		if u.Email() == normalized {
			return u, nil
		}
	}
	return nil, apperr.NewNotFoundError("User", normalized)
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, apperr.NewNotFoundError("User", id.String())
	}
	return u, nil
}

// Save checks email uniqueness under the write lock, mirroring the unique index.
func (r *UserRepository) Save(_ context.Context, u *userDomain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email() == u.Email() {
			return apperr.NewConflictError("email already registered")
		}
	}
	r.store.users[u.ID()] = u
	return nil
}

func (r *UserRepository) VerifyPassword(u *userDomain.User, raw string) bool {
	return r.hasher.Matches(raw, u.PasswordHash())
}

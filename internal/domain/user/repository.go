package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// FindByEmail returns a NotFound error when no account uses the email.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Save inserts a new account; a duplicate email yields a Conflict error.
	Save(ctx context.Context, u *User) error

	// VerifyPassword reports whether raw matches the account's stored hash.
	VerifyPassword(u *User, raw string) bool
}

// Package user models shelter staff and adopters.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// User is an account that can sign in. Emails are unique and stored lower-cased.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	fullName     string
	role         Role
	createdAt    time.Time
}

// NewUser creates an account with an already-hashed password.
func NewUser(email, passwordHash, fullName string, role Role) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperr.NewValidationError("email is required")
	}
	if passwordHash == "" {
		return nil, apperr.NewValidationError("password hash is required")
	}
	if !role.IsValid() {
		return nil, apperr.NewValidationError("invalid role: " + string(role))
	}
	return &User{
		id:           uuid.New(),
		email:        NormalizeEmail(email),
		passwordHash: passwordHash,
		fullName:     strings.TrimSpace(fullName),
		role:         role,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, email, passwordHash, fullName string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		fullName:     fullName,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) FullName() string     { return u.fullName }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) IsAdmin() bool        { return u.role == RoleAdmin }

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

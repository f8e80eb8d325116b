package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(200);not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null"`
}

func (UserModel) TableName() string { return "users" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
}

func NewGormUserRepository(db *gorm.DB, hasher auth.PasswordHasher) *GormUserRepository {
	return &GormUserRepository{db: db, hasher: hasher}
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	normalized := userDomain.NormalizeEmail(email)
	if err := r.db.WithContext(ctx).Where("email = ?", normalized).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("User", normalized)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toUserDomain(&model), nil
}

// Save relies on the unique email index; gorm must be opened with
// TranslateError so the violation surfaces as gorm.ErrDuplicatedKey.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	if err := r.db.WithContext(ctx).Create(toUserModel(u)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflictError("email already registered")
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) VerifyPassword(u *userDomain.User, raw string) bool {
	return r.hasher.Matches(raw, u.PasswordHash())
}

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		FullName:     u.FullName(),
		Role:         string(u.Role()),
		CreatedAt:    u.CreatedAt(),
	}
}

func toUserDomain(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.FullName,
		userDomain.Role(m.Role),
		m.CreatedAt,
	)
}

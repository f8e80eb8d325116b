package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
)

var emailPattern = regexp.MustCompile(`^[\w._%+-]+@[\w.-]+\.[A-Za-z]{2,6}$`)

// RegisterRequest is the request DTO for adopter sign-up.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the request DTO for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the API response representation of an account. It never
// carries the password hash.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserService implements registration and credential checks.
type UserService struct {
	repo              userDomain.UserRepository
	hasher            auth.PasswordHasher
	passwordMinLength int
	logger            *zap.Logger
}

// NewUserService creates a new UserService. A passwordMinLength of 0 only
// requires a non-empty password.
func NewUserService(
	repo userDomain.UserRepository,
	hasher auth.PasswordHasher,
	passwordMinLength int,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		repo:              repo,
		hasher:            hasher,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

// Register creates an adopter account.
func (s *UserService) Register(ctx context.Context, fullName, email, rawPassword string) (*UserDTO, error) {
	u, err := s.createUser(ctx, fullName, email, rawPassword, userDomain.RoleAdopter)
	if err != nil {
		return nil, err
	}

	s.logger.Info("adopter registered", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, nil
}

// Authenticate returns the account when the password verifies. An unknown
// email and a wrong password both yield (nil, false, nil).
func (s *UserService) Authenticate(ctx context.Context, email, rawPassword string) (*UserDTO, bool, error) {
	if err := validateEmail(email); err != nil {
		return nil, false, err
	}
	if rawPassword == "" {
		return nil, false, apperr.NewValidationError("password is required")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil || !s.repo.VerifyPassword(u, rawPassword) {
		s.logger.Info("authentication failed")
		return nil, false, nil
	}

	result := toUserDTO(u)
	return &result, true, nil
}

// EnsureAdmin creates the admin account when it does not exist yet. The
// boolean reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, fullName, email, rawPassword string) (*UserDTO, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsAdmin() {
			return nil, false, apperr.NewConflictError("email is registered to a non-admin account")
		}
		result := toUserDTO(existing)
		return &result, false, nil
	case !apperr.IsNotFound(err):
		return nil, false, fmt.Errorf("failed to look up admin: %w", err)
	}

	u, err := s.createUser(ctx, fullName, email, rawPassword, userDomain.RoleAdmin)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("admin account seeded", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, true, nil
}

// GetUser retrieves an account by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

func (s *UserService) createUser(ctx context.Context, fullName, email, rawPassword string, role userDomain.Role) (*userDomain.User, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, apperr.NewValidationError("full name is required")
	}
	if err := s.validatePassword(rawPassword); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.NewConflictError("email already registered")
	case !apperr.IsNotFound(err):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, err
	}
	u, err := userDomain.NewUser(email, hash, fullName, role)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) validatePassword(raw string) error {
	if raw == "" {
		return apperr.NewValidationError("password is required")
	}
	if utf8.RuneCountInString(raw) < s.passwordMinLength {
		return apperr.NewValidationError(fmt.Sprintf("password must be at least %d characters", s.passwordMinLength))
	}
	if len(raw) > auth.MaxPasswordBytes {
		return apperr.NewValidationError(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	return nil
}

func validateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return apperr.NewValidationError("email is required")
	}
	if !emailPattern.MatchString(trimmed) {
		return apperr.NewValidationError("invalid email address")
	}
	return nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}

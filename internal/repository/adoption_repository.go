package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	adoptionDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/adoption"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// AdoptionRequestModel is the GORM model for the adoption_requests table.
// Pet and adopter are weak references: no foreign keys, no cascades.
type AdoptionRequestModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PetID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	AdopterID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Message     string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	RequestedAt time.Time  `gorm:"type:timestamptz;not null;index"`
	ProcessedAt *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for the GORM model.
func (AdoptionRequestModel) TableName() string {
	return "adoption_requests"
}

// GormAdoptionRequestRepository is the GORM-based implementation of RequestRepository.
type GormAdoptionRequestRepository struct {
	db *gorm.DB
}

// NewGormAdoptionRequestRepository creates a new GormAdoptionRequestRepository.
func NewGormAdoptionRequestRepository(db *gorm.DB) *GormAdoptionRequestRepository {
	return &GormAdoptionRequestRepository{db: db}
}

// Save persists a new request.
func (r *GormAdoptionRequestRepository) Save(ctx context.Context, req *adoptionDomain.Request) error {
	if err := r.db.WithContext(ctx).Create(toRequestModel(req)).Error; err != nil {
		return fmt.Errorf("failed to save adoption request: %w", err)
	}
	return nil
}

// FindByID retrieves a request by its unique identifier.
func (r *GormAdoptionRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*adoptionDomain.Request, error) {
	var model AdoptionRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("AdoptionRequest", id.String())
		}
		return nil, fmt.Errorf("failed to find adoption request by ID: %w", err)
	}
	return toRequestDomain(&model), nil
}

// UpdateStatus resolves a request only while it is still in the from status.
func (r *GormAdoptionRequestRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from, to adoptionDomain.Status,
	processedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&AdoptionRequestModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":       string(to),
			"processed_at": processedAt.UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update adoption request status: %w", result.Error)
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

// FindByStatus retrieves requests in the given status, most recent first.
func (r *GormAdoptionRequestRepository) FindByStatus(ctx context.Context, status adoptionDomain.Status) ([]*adoptionDomain.Request, error) {
	var models []AdoptionRequestModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("requested_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find adoption requests by status: %w", err)
	}
	return toRequestDomains(models), nil
}

// FindByAdopter retrieves an adopter's requests, most recent first.
func (r *GormAdoptionRequestRepository) FindByAdopter(ctx context.Context, adopterID uuid.UUID) ([]*adoptionDomain.Request, error) {
	var models []AdoptionRequestModel
	if err := r.db.WithContext(ctx).
		Where("adopter_id = ?", adopterID).
		Order("requested_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find adoption requests by adopter: %w", err)
	}
	return toRequestDomains(models), nil
}

// --- Conversion Helpers ---

func toRequestModel(req *adoptionDomain.Request) *AdoptionRequestModel {
	return &AdoptionRequestModel{
		ID:          req.ID(),
		PetID:       req.PetID(),
		AdopterID:   req.AdopterID(),
		Message:     req.Message(),
		Status:      string(req.Status()),
		RequestedAt: req.RequestedAt(),
		ProcessedAt: req.ProcessedAt(),
	}
}

func toRequestDomain(m *AdoptionRequestModel) *adoptionDomain.Request {
	return adoptionDomain.ReconstructRequest(
		m.ID,
		m.PetID,
		m.AdopterID,
		m.Message,
		adoptionDomain.Status(m.Status),
		m.RequestedAt,
		m.ProcessedAt,
	)
}

func toRequestDomains(models []AdoptionRequestModel) []*adoptionDomain.Request {
	out := make([]*adoptionDomain.Request, len(models))
	for i := range models {
		out[i] = toRequestDomain(&models[i])
	}
	return out
}

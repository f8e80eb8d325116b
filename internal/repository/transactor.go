package repository

import (
	"context"

	"gorm.io/gorm"

	adoptionDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/adoption"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
)

// GormTransactor runs workflow operations inside a database transaction.
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// Transact commits when fn returns nil and rolls back otherwise.
func (t *GormTransactor) Transact(ctx context.Context, fn func(ctx context.Context, tx adoptionDomain.Tx) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t gormTx) Pets() petDomain.PetRepository {
	return NewGormPetRepository(t.db)
}

func (t gormTx) Requests() adoptionDomain.RequestRepository {
	return NewGormAdoptionRequestRepository(t.db)
}

// AutoMigrate creates or updates the tables for every model. Used in
// development and tests; other environments run the SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&PetModel{}, &AdoptionRequestModel{}, &UserModel{}, &FavoriteModel{})
}

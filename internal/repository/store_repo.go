package repository

import (
	"context"

	"storehub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreRepository defines persistence for the Store root entity.
// Stores are the tenant boundary itself, so lookups here are by plain id.
type StoreRepository interface {
	CreateTx(tx *gorm.DB, s *model.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type storeRepo struct{ db *gorm.DB }

func NewStoreRepository(db *gorm.DB) StoreRepository { return &storeRepo{db: db} }

func (r *storeRepo) CreateTx(tx *gorm.DB, s *model.Store) error {
	return tx.Create(s).Error
}

func (r *storeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	var s model.Store
	err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = false", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *storeRepo) DB() *gorm.DB { return r.db }

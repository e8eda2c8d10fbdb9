package repository

import (
	"context"

	"storehub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StorageRepository defines tenant-scoped persistence for storage locations.
type StorageRepository interface {
	Create(ctx context.Context, s *model.Storage) error
	CreateTx(tx *gorm.DB, s *model.Storage) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Storage, error)
	List(ctx context.Context, storeID uuid.UUID) ([]model.Storage, error)

	// SoftDeleteTx marks the storage deleted inside the caller's transaction,
	// so "delete storage" can compose with the decommission transition.
	SoftDeleteTx(tx *gorm.DB, storeID, id uuid.UUID) (int64, error)

	// UnsetPrimaryTx / SetPrimaryTx keep the one-primary invariant when a
	// storage is promoted.
	UnsetPrimaryTx(tx *gorm.DB, storeID uuid.UUID) error
	SetPrimaryTx(tx *gorm.DB, storeID, id uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type storageRepo struct{ db *gorm.DB }

func NewStorageRepository(db *gorm.DB) StorageRepository { return &storageRepo{db: db} }

func (r *storageRepo) Create(ctx context.Context, s *model.Storage) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *storageRepo) CreateTx(tx *gorm.DB, s *model.Storage) error {
	return tx.Create(s).Error
}

func (r *storageRepo) FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Storage, error) {
	var s model.Storage
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ? AND is_deleted = false", id, storeID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storageRepo) List(ctx context.Context, storeID uuid.UUID) ([]model.Storage, error) {
	var list []model.Storage
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_deleted = false", storeID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (r *storageRepo) SoftDeleteTx(tx *gorm.DB, storeID, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.Storage{}).
		Where("id = ? AND store_id = ? AND is_deleted = false", id, storeID).
		Updates(map[string]interface{}{"is_deleted": true, "active": false, "is_primary": false})
	return res.RowsAffected, res.Error
}

func (r *storageRepo) UnsetPrimaryTx(tx *gorm.DB, storeID uuid.UUID) error {
	return tx.Model(&model.Storage{}).
		Where("store_id = ? AND is_primary = true AND is_deleted = false", storeID).
		Update("is_primary", false).Error
}

func (r *storageRepo) SetPrimaryTx(tx *gorm.DB, storeID, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.Storage{}).
		Where("id = ? AND store_id = ? AND is_deleted = false", id, storeID).
		Update("is_primary", true)
	return res.RowsAffected, res.Error
}

func (r *storageRepo) DB() *gorm.DB { return r.db }

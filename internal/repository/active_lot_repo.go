package repository

import (
	"context"
	"errors"

	"storehub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageActiveLotRepository manages the "currently drawing from" pointer of
// each storage location.
type StorageActiveLotRepository interface {
	// SetActiveTx points the storage at the given lot, creating the pointer
	// row when the storage has never had one.
	SetActiveTx(tx *gorm.DB, storeID, storageID, lotID uuid.UUID) error
	FindByStorage(ctx context.Context, storeID, storageID uuid.UUID) (*model.StorageActiveLot, error)

	// FindByStorageTx reads the pointer inside the caller's transaction with a
	// row lock, so concurrent intakes on the same storage serialize instead of
	// racing SetActiveTx.
	FindByStorageTx(tx *gorm.DB, storeID, storageID uuid.UUID) (*model.StorageActiveLot, error)

	// ClearTx nulls the pointer and reports how many rows held a non-null
	// value — an already-cleared pointer contributes zero.
	ClearTx(tx *gorm.DB, storeID, storageID uuid.UUID) (int64, error)
}

type activeLotRepo struct{ db *gorm.DB }

func NewStorageActiveLotRepository(db *gorm.DB) StorageActiveLotRepository {
	return &activeLotRepo{db: db}
}

func (r *activeLotRepo) SetActiveTx(tx *gorm.DB, storeID, storageID, lotID uuid.UUID) error {
	var existing model.StorageActiveLot
	err := tx.Where("store_id = ? AND storage_id = ?", storeID, storageID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.StorageActiveLot{
			StoreID:     storeID,
			StorageID:   storageID,
			ActiveLotID: &lotID,
		}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&existing).Update("active_lot_id", lotID).Error
}

func (r *activeLotRepo) FindByStorage(ctx context.Context, storeID, storageID uuid.UUID) (*model.StorageActiveLot, error) {
	var al model.StorageActiveLot
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND storage_id = ?", storeID, storageID).
		First(&al).Error
	if err != nil {
		return nil, err
	}
	return &al, nil
}

func (r *activeLotRepo) FindByStorageTx(tx *gorm.DB, storeID, storageID uuid.UUID) (*model.StorageActiveLot, error) {
	var al model.StorageActiveLot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ? AND storage_id = ?", storeID, storageID).
		First(&al).Error
	if err != nil {
		return nil, err
	}
	return &al, nil
}

func (r *activeLotRepo) ClearTx(tx *gorm.DB, storeID, storageID uuid.UUID) (int64, error) {
	res := tx.Model(&model.StorageActiveLot{}).
		Where("store_id = ? AND storage_id = ? AND active_lot_id IS NOT NULL", storeID, storageID).
		Update("active_lot_id", nil)
	return res.RowsAffected, res.Error
}

package repository

import (
	"context"

	"storehub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryLotRepository manages inventory lots. Closing is a one-way
// transition — there is intentionally no method that reopens a lot.
type InventoryLotRepository interface {
	CreateTx(tx *gorm.DB, lot *model.InventoryLot) error
	ListByStorage(ctx context.Context, storeID, storageID uuid.UUID) ([]model.InventoryLot, error)

	// CloseAllTx closes every lot of a storage regardless of current status
	// and returns the number of rows whose status actually changed.
	CloseAllTx(tx *gorm.DB, storeID, storageID uuid.UUID) (int64, error)
}

type lotRepo struct{ db *gorm.DB }

func NewInventoryLotRepository(db *gorm.DB) InventoryLotRepository { return &lotRepo{db: db} }

func (r *lotRepo) CreateTx(tx *gorm.DB, lot *model.InventoryLot) error {
	return tx.Create(lot).Error
}

func (r *lotRepo) ListByStorage(ctx context.Context, storeID, storageID uuid.UUID) ([]model.InventoryLot, error) {
	var lots []model.InventoryLot
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND storage_id = ?", storeID, storageID).
		Order("created_at asc").
		Find(&lots).Error
	return lots, err
}

func (r *lotRepo) CloseAllTx(tx *gorm.DB, storeID, storageID uuid.UUID) (int64, error) {
	// Filtering on status keeps the re-run count at zero: closing an
	// already-closed lot is a no-op outcome, not a counted change.
	res := tx.Model(&model.InventoryLot{}).
		Where("store_id = ? AND storage_id = ? AND status <> ?", storeID, storageID, model.LotClosed).
		Update("status", model.LotClosed)
	return res.RowsAffected, res.Error
}

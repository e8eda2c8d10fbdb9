package repository

import (
	"context"
	"errors"

	"storehub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryBalanceRepository manages the per-product stock position rows of
// each storage.
type InventoryBalanceRepository interface {
	// AddTx increments (or creates) the balance row for a product inside the
	// caller's transaction.
	AddTx(tx *gorm.DB, storeID, storageID, productID uuid.UUID, qty, value decimal.Decimal) error
	ListByStorage(ctx context.Context, storeID, storageID uuid.UUID) ([]model.InventoryBalance, error)

	// DeleteAllTx purges every balance row of a storage and returns the count.
	DeleteAllTx(tx *gorm.DB, storeID, storageID uuid.UUID) (int64, error)
}

type balanceRepo struct{ db *gorm.DB }

func NewInventoryBalanceRepository(db *gorm.DB) InventoryBalanceRepository {
	return &balanceRepo{db: db}
}

func (r *balanceRepo) AddTx(tx *gorm.DB, storeID, storageID, productID uuid.UUID, qty, value decimal.Decimal) error {
	var existing model.InventoryBalance
	err := tx.Where("store_id = ? AND storage_id = ? AND product_id = ?", storeID, storageID, productID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.InventoryBalance{
			StoreID:   storeID,
			StorageID: storageID,
			ProductID: productID,
			Quantity:  qty,
			Value:     value,
		}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&existing).Updates(map[string]interface{}{
		"quantity": gorm.Expr("quantity + ?", qty),
		"value":    gorm.Expr("value + ?", value),
	}).Error
}

func (r *balanceRepo) ListByStorage(ctx context.Context, storeID, storageID uuid.UUID) ([]model.InventoryBalance, error) {
	var list []model.InventoryBalance
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND storage_id = ?", storeID, storageID).
		Find(&list).Error
	return list, err
}

func (r *balanceRepo) DeleteAllTx(tx *gorm.DB, storeID, storageID uuid.UUID) (int64, error) {
	res := tx.Where("store_id = ? AND storage_id = ?", storeID, storageID).
		Delete(&model.InventoryBalance{})
	return res.RowsAffected, res.Error
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inventory lot statuses. A lot never reopens once closed.
const (
	LotOpen   = "OPEN"
	LotClosed = "CLOSED"
)

// InventoryLot is a batch of stock received into one storage location.
type InventoryLot struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	StorageID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status    string          `gorm:"type:varchar(10);not null;default:OPEN"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (InventoryLot) TableName() string { return "inventory_lots" }

// StorageActiveLot points at the lot a storage is currently drawing from.
// At most one row per storage; ActiveLotID is nil when nothing is active.
type StorageActiveLot struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	StorageID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	ActiveLotID *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt   time.Time

	ActiveLot *InventoryLot `gorm:"foreignKey:ActiveLotID"`
}

func (StorageActiveLot) TableName() string { return "storage_active_lots" }

// InventoryBalance is the per-product stock position of one storage.
// The existence of a row means the storage currently holds that product.
type InventoryBalance struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	StorageID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_storage_product,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_storage_product,priority:2"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	Value     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	UpdatedAt time.Time
}

func (InventoryBalance) TableName() string { return "inventory_balances" }

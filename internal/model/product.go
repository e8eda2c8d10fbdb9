package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry scoped to one store. Inventory lots and
// balances reference it; it plays no part in the decommission transition.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string { return "products" }

// ProductPack describes a sellable multiple of a product (e.g. a 6-pack).
type ProductPack struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"not null"`
	UnitsPerPack int       `gorm:"not null"`
	CreatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (ProductPack) TableName() string { return "product_packs" }

// ProductBarcode maps a scanned code to a product within one store.
type ProductBarcode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_barcode"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Barcode   string    `gorm:"not null;uniqueIndex:idx_store_barcode"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (ProductBarcode) TableName() string { return "product_barcodes" }

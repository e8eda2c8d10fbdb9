package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Storage is a physical or logical storage location inside a store.
// At most one non-deleted storage per store holds IsPrimary = true; a partial
// unique index (idx_storages_one_primary) backs the invariant the promotion
// flow maintains.
type Storage struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"not null"`
	Capacity  decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	IsPrimary bool            `gorm:"not null;default:false"`
	Active    bool            `gorm:"not null;default:true"`
	IsDeleted bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Storage) TableName() string { return "storages" }

package model

import (
	"time"

	"github.com/google/uuid"
)

// Member roles. RoleOwner is granted to the user that provisions the store.
const (
	RoleOwner = "OWNER"
	RoleStaff = "STAFF"
)

// StoreMember grants a user access to a store. The existence of a matching
// (store_id, user_id) row is the sole authorization check for tenant access.
type StoreMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_user"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time

	Store *Store `gorm:"foreignKey:StoreID"`
}

func (StoreMember) TableName() string { return "store_members" }

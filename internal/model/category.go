package model

import (
	"time"

	"github.com/google/uuid"
)

// Category status values.
const (
	CategoryActive   = "ACTIVE"
	CategoryInactive = "INACTIVE"
	CategoryArchived = "ARCHIVED"
)

// RootLayer marks a category at the root of its tree; root categories
// carry no parent reference.
const RootLayer = "1"

// Category is a node in a per-store category forest. A non-nil ParentID must
// reference a category in the same store; the parent must exist before the
// child is created, so no back-edge (cycle) can ever be persisted.
type Category struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name          string     `gorm:"not null"`
	ParentID      *uuid.UUID `gorm:"type:uuid;index"`
	Layer         string     `gorm:"type:varchar(10);not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:ACTIVE"`
	ColorSettings *string
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Category) TableName() string { return "categories" }

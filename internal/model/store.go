package model

import (
	"time"

	"github.com/google/uuid"
)

// Store is the root tenant boundary. Every other scoped entity carries its id.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	IsDeleted bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Store) TableName() string { return "stores" }

package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateStorageRequest struct {
	Name     string          `json:"name"     validate:"required,min=1,max=100"`
	Capacity decimal.Decimal `json:"capacity" validate:"omitempty,min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type StorageResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Capacity  decimal.Decimal `json:"capacity"`
	IsPrimary bool            `json:"isPrimary"`
	Active    bool            `json:"active"`
}

// DecommissionResponse reports per-step affected row counts so callers can
// tell "nothing to do" from "something happened".
type DecommissionResponse struct {
	ActiveLots int64 `json:"activeLots"`
	Lots       int64 `json:"lots"`
	Balances   int64 `json:"balances"`
}

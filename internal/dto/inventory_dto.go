package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type ReceiveStockRequest struct {
	StorageID string          `json:"storageId" validate:"required,uuid"`
	ProductID string          `json:"productId" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"  validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unitCost"  validate:"omitempty"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type LotResponse struct {
	ID        uuid.UUID       `json:"id"`
	StorageID uuid.UUID       `json:"storageId"`
	ProductID uuid.UUID       `json:"productId"`
	Status    string          `json:"status"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type BalanceResponse struct {
	StorageID uuid.UUID       `json:"storageId"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
}

type ReceiveStockResponse struct {
	LotID string `json:"lotId"`
}

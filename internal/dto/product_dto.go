package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=1,max=200"`
	CategoryID  *string         `json:"categoryId"  validate:"omitempty,uuid"`
	Price       decimal.Decimal `json:"price"       validate:"omitempty,min=0"`
	Description *string         `json:"description"`
	Barcode     *string         `json:"barcode"     validate:"omitempty,min=4,max=64"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=200"`
	CategoryID  *string          `json:"categoryId"  validate:"omitempty,uuid"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,min=0"`
	Description *string          `json:"description"`
	Active      *bool            `json:"active"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	Description *string         `json:"description,omitempty"`
}

// BarcodeLookupResponse is the cached shape served by the barcode endpoint.
type BarcodeLookupResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

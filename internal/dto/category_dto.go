package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	// ParentID may be omitted, empty, or the nil UUID — all mean "root".
	ParentID      *string `json:"parentId"      validate:"omitempty,uuid"`
	Layer         string  `json:"layer"         validate:"required,max=10"`
	Status        string  `json:"status"        validate:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED"`
	ColorSettings *string `json:"colorSettings"`
	Description   *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name          *string `json:"name"          validate:"omitempty,min=1,max=100"`
	Status        *string `json:"status"        validate:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED"`
	ColorSettings *string `json:"colorSettings"`
	Description   *string `json:"description"`
}

type RemoveCategoriesRequest struct {
	CategoryIDs []string `json:"categoryIds" validate:"required,min=1,dive,uuid"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CreateCategoryResponse struct {
	CategoryID string `json:"categoryId"`
}

type CategoryResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	ParentID      *uuid.UUID `json:"parentId,omitempty"`
	Layer         string     `json:"layer"`
	Status        string     `json:"status"`
	ColorSettings *string    `json:"colorSettings,omitempty"`
	Description   *string    `json:"description,omitempty"`
	CountChildren int64      `json:"countChildren"`
}

type RemoveCategoriesResponse struct {
	RemovedCount int64 `json:"removedCount"`
}

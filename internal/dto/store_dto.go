package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CreateStoreResponse struct {
	StoreID string `json:"storeId"`
}

type EnrolledCountResponse struct {
	Count int64 `json:"count"`
}

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"storehub/internal/apierror"
	"storehub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const StoreIDKey = "store_id"

// ResolveStoreID extracts the tenant (store) id from the request, checking in
// precedence order: X-Store-ID header, JSON body field "store_id", query
// parameter, path parameter. Returns an empty string when none is present.
//
// A consumed JSON body is restored so handlers can still bind it.
func ResolveStoreID(c *gin.Context) string {
	if id := c.GetHeader("X-Store-ID"); id != "" {
		return id
	}

	if c.Request.Body != nil && c.ContentType() == "application/json" {
		raw, err := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
		if err == nil && len(raw) > 0 {
			var probe struct {
				StoreID string `json:"store_id"`
			}
			if json.Unmarshal(raw, &probe) == nil && probe.StoreID != "" {
				return probe.StoreID
			}
		}
	}

	if id := c.Query("store_id"); id != "" {
		return id
	}
	return c.Param("store_id")
}

// TenantScope resolves and validates the active tenant for a request. The
// resolved store id is only accepted when a membership row exists for the
// authenticated user; a missing row answers 404 — never 403 — so the API
// does not reveal whether the store exists at all.
//
// Must run after JWTAuth.
func TenantScope(members repository.StoreMemberRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ResolveStoreID(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("store id is required"))
			return
		}
		storeID, err := uuid.Parse(raw)
		if err != nil || storeID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("store id is malformed"))
			return
		}

		userID := GetUserID(c)
		ok, err := members.Exists(c.Request.Context(), storeID, userID)
		if err != nil {
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("store_id", storeID.String()).
				Err(err).
				Msg("tenant membership lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("internal server error"))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, apierror.New("store not found"))
			return
		}

		c.Set(StoreIDKey, storeID)
		c.Next()
	}
}

// GetStoreID returns the tenant id resolved by TenantScope.
func GetStoreID(c *gin.Context) uuid.UUID {
	id, _ := c.MustGet(StoreIDKey).(uuid.UUID)
	return id
}

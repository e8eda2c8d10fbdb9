//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storehub/internal/config"
	"storehub/internal/infra"
	"storehub/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

type testEnv struct {
	server *httptest.Server
	token  string
}

func (env *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer, storeID string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, env.server.URL+path, body)
	} else {
		req, err = http.NewRequest(method, env.server.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if env.token != "" {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	if storeID != "" {
		req.Header.Set("X-Store-ID", storeID)
	}
	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("storehub_test"),
		tcPostgres.WithUsername("storehub"),
		tcPostgres.WithPassword("storehub"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                   8000,
		Env:                    "production", // no swagger, release mode
		JWTSecret:              "test-secret-key",
		JWTExpirationHours:     8,
		JWTRefreshHours:        24,
		DatabaseURL:            pgURL,
		RedisURL:               rdURL,
		WorkerPoolSize:         1,
		MaxStoresPerUser:       2,
		DefaultStorageName:     "Main storage",
		DefaultStorageCapacity: "1000",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	r := New(cfg, db, rdb, smtpCB, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv}

	regResp := env.do(t, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{"email": "owner@e2e.test", "name": "Owner", "password": "e2e-pass-123"}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	regResp.Body.Close()

	loginResp := env.do(t, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "owner@e2e.test", "password": "e2e-pass-123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)
	env.token = loginBody.AccessToken

	return env
}

func (env *testEnv) createStore(t *testing.T, name string) string {
	t.Helper()
	resp := env.do(t, "POST", "/v1/stores", jsonBody(t, map[string]string{"name": name}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		StoreID string `json:"storeId"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.StoreID)
	return body.StoreID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_ProvisioningAndQuota(t *testing.T) {
	env := setupTestEnv(t)

	env.createStore(t, "First")
	storeID := env.createStore(t, "Second")

	// MaxStoresPerUser is 2: the third attempt fails without side effects.
	resp := env.do(t, "POST", "/v1/stores", jsonBody(t, map[string]string{"name": "Third"}), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	countResp := env.do(t, "GET", "/v1/stores/enrolled-count", nil, "")
	var count struct {
		Count int64 `json:"count"`
	}
	decodeJSON(t, countResp, &count)
	assert.Equal(t, int64(2), count.Count)

	// Provisioning created the default primary storage.
	listResp := env.do(t, "GET", "/v1/storages", nil, storeID)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var storages []struct {
		Name      string `json:"name"`
		IsPrimary bool   `json:"isPrimary"`
	}
	decodeJSON(t, listResp, &storages)
	require.Len(t, storages, 1)
	assert.True(t, storages[0].IsPrimary)
	assert.Equal(t, "Main storage", storages[0].Name)
}

func TestE2E_CategoryHierarchy(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.createStore(t, "Catalog")

	parentResp := env.do(t, "POST", "/v1/categories",
		jsonBody(t, map[string]any{"name": "Beverages", "layer": "1"}), storeID)
	require.Equal(t, http.StatusCreated, parentResp.StatusCode)
	var parent struct {
		CategoryID string `json:"categoryId"`
	}
	decodeJSON(t, parentResp, &parent)

	childResp := env.do(t, "POST", "/v1/categories",
		jsonBody(t, map[string]any{"name": "Sodas", "layer": "2", "parentId": parent.CategoryID}), storeID)
	require.Equal(t, http.StatusCreated, childResp.StatusCode)
	childResp.Body.Close()

	// Unknown parent → 404, not created.
	badResp := env.do(t, "POST", "/v1/categories",
		jsonBody(t, map[string]any{"name": "Orphan", "layer": "2", "parentId": "3b1f8d1e-0000-4000-8000-000000000000"}), storeID)
	assert.Equal(t, http.StatusNotFound, badResp.StatusCode)
	badResp.Body.Close()

	getResp := env.do(t, "GET", "/v1/categories/"+parent.CategoryID, nil, storeID)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var got struct {
		CountChildren int64 `json:"countChildren"`
	}
	decodeJSON(t, getResp, &got)
	assert.Equal(t, int64(1), got.CountChildren)

	// Bulk remove reports the count; the child survives without cascading.
	rmResp := env.do(t, "POST", "/v1/categories/remove",
		jsonBody(t, map[string]any{"categoryIds": []string{parent.CategoryID}}), storeID)
	require.Equal(t, http.StatusOK, rmResp.StatusCode)
	var rm struct {
		RemovedCount int64 `json:"removedCount"`
	}
	decodeJSON(t, rmResp, &rm)
	assert.Equal(t, int64(1), rm.RemovedCount)
}

func TestE2E_DecommissionIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.createStore(t, "Warehouse")

	listResp := env.do(t, "GET", "/v1/storages", nil, storeID)
	var storages []struct {
		ID string `json:"id"`
	}
	decodeJSON(t, listResp, &storages)
	require.Len(t, storages, 1)
	storageID := storages[0].ID

	prodResp := env.do(t, "POST", "/v1/products",
		jsonBody(t, map[string]any{"name": "Cola 500ml", "price": 2.5}), storeID)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	recvResp := env.do(t, "POST", "/v1/inventory/receive",
		jsonBody(t, map[string]any{"storageId": storageID, "productId": prod.ID, "quantity": 24, "unitCost": 1.1}), storeID)
	require.Equal(t, http.StatusCreated, recvResp.StatusCode)
	recvResp.Body.Close()

	type counts struct {
		ActiveLots int64 `json:"activeLots"`
		Lots       int64 `json:"lots"`
		Balances   int64 `json:"balances"`
	}

	first := env.do(t, "POST", "/v1/storages/"+storageID+"/decommission", nil, storeID)
	require.Equal(t, http.StatusOK, first.StatusCode)
	var c1 counts
	decodeJSON(t, first, &c1)
	assert.Equal(t, counts{ActiveLots: 1, Lots: 1, Balances: 1}, c1)

	second := env.do(t, "POST", "/v1/storages/"+storageID+"/decommission", nil, storeID)
	require.Equal(t, http.StatusOK, second.StatusCode)
	var c2 counts
	decodeJSON(t, second, &c2)
	assert.Equal(t, counts{}, c2)
}

func TestE2E_CrossTenantIsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	storeID := env.createStore(t, "Mine")

	// A second user cannot see the first user's store — 404, never 403.
	reg := env.do(t, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{"email": "intruder@e2e.test", "name": "Intruder", "password": "e2e-pass-456"}), "")
	require.Equal(t, http.StatusCreated, reg.StatusCode)
	reg.Body.Close()

	login := env.do(t, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "intruder@e2e.test", "password": "e2e-pass-456"}), "")
	require.Equal(t, http.StatusOK, login.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, login, &loginBody)

	intruder := &testEnv{server: env.server, token: loginBody.AccessToken}
	resp := intruder.do(t, "GET", "/v1/categories", nil, storeID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

package service

import (
	"context"
	"testing"

	"storehub/internal/apierror"
	"storehub/internal/dto"
	"storehub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryFixture struct {
	svc       InventoryService
	storages  *stubStorageRepo
	lots      *stubLotRepo
	activeLot *stubActiveLotRepo
	balances  *stubBalanceRepo
	storeID   uuid.UUID
	storageID uuid.UUID
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	t.Helper()
	storages := newStubStorageRepo()
	lots := newStubLotRepo()
	activeLots := newStubActiveLotRepo()
	balances := newStubBalanceRepo()

	storeID := uuid.New()
	storage := &model.Storage{StoreID: storeID, Name: "Main", Active: true}
	require.NoError(t, storages.Create(context.Background(), storage))

	return &inventoryFixture{
		svc:       NewInventoryService(nil, storages, lots, activeLots, balances),
		storages:  storages,
		lots:      lots,
		activeLot: activeLots,
		balances:  balances,
		storeID:   storeID,
		storageID: storage.ID,
	}
}

func (f *inventoryFixture) receive(t *testing.T, productID uuid.UUID, qty, cost int64) *dto.ReceiveStockResponse {
	t.Helper()
	resp, err := f.svc.ReceiveStock(context.Background(), f.storeID, dto.ReceiveStockRequest{
		StorageID: f.storageID.String(),
		ProductID: productID.String(),
		Quantity:  decimal.NewFromInt(qty),
		UnitCost:  decimal.NewFromInt(cost),
	})
	require.NoError(t, err)
	return resp
}

func TestReceiveStockOpensLotAndActivatesIt(t *testing.T) {
	f := newInventoryFixture(t)
	productID := uuid.New()

	resp := f.receive(t, productID, 10, 5)
	lotID, err := uuid.Parse(resp.LotID)
	require.NoError(t, err)

	lot := f.lots.lots[lotID]
	require.NotNil(t, lot)
	assert.Equal(t, model.LotOpen, lot.Status)

	// First intake into an idle storage points the active-lot pointer at it.
	ptr, err := f.activeLot.FindByStorage(context.Background(), f.storeID, f.storageID)
	require.NoError(t, err)
	require.NotNil(t, ptr.ActiveLotID)
	assert.Equal(t, lotID, *ptr.ActiveLotID)
}

func TestReceiveStockKeepsExistingActiveLot(t *testing.T) {
	f := newInventoryFixture(t)

	first := f.receive(t, uuid.New(), 10, 5)
	f.receive(t, uuid.New(), 20, 3)

	ptr, err := f.activeLot.FindByStorage(context.Background(), f.storeID, f.storageID)
	require.NoError(t, err)
	require.NotNil(t, ptr.ActiveLotID)
	assert.Equal(t, first.LotID, ptr.ActiveLotID.String(), "second intake must not steal the pointer")
}

func TestReceiveStockReadsPointerInsideTransaction(t *testing.T) {
	f := newInventoryFixture(t)

	f.receive(t, uuid.New(), 10, 5)
	f.receive(t, uuid.New(), 4, 2)

	// The pointer check during intake must use the transaction handle, not
	// the repository's pooled connection.
	assert.Zero(t, f.activeLot.pooledReads, "intake must not read the active-lot pointer outside the transaction")
}

func TestReceiveStockAccumulatesBalances(t *testing.T) {
	f := newInventoryFixture(t)
	productID := uuid.New()

	f.receive(t, productID, 10, 5)
	f.receive(t, productID, 7, 5)

	balances, err := f.balances.ListByStorage(context.Background(), f.storeID, f.storageID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.True(t, balances[0].Quantity.Equal(decimal.NewFromInt(17)))
	assert.True(t, balances[0].Value.Equal(decimal.NewFromInt(85)))
}

func TestReceiveStockInactiveStorageIsInvalid(t *testing.T) {
	f := newInventoryFixture(t)
	f.storages.storages[f.storageID].Active = false

	_, err := f.svc.ReceiveStock(context.Background(), f.storeID, dto.ReceiveStockRequest{
		StorageID: f.storageID.String(),
		ProductID: uuid.New().String(),
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, apierror.ErrInvalid)
}

func TestReceiveStockUnknownStorageIsNotFound(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.svc.ReceiveStock(context.Background(), f.storeID, dto.ReceiveStockRequest{
		StorageID: uuid.New().String(),
		ProductID: uuid.New().String(),
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestReceiveStockCrossStoreStorageIsNotFound(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.svc.ReceiveStock(context.Background(), uuid.New(), dto.ReceiveStockRequest{
		StorageID: f.storageID.String(),
		ProductID: uuid.New().String(),
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

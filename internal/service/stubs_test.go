package service

// In-memory repository stubs shared by the service tests. Tx methods accept a
// nil *gorm.DB because runTx passes the callback straight through when no real
// database handle is wired.

import (
	"context"

	"storehub/internal/model"
	"storehub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Store repo ────────────────────────────────────────────────────────────────

type stubStoreRepo struct {
	stores map[uuid.UUID]*model.Store
}

var _ repository.StoreRepository = (*stubStoreRepo)(nil)

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{stores: make(map[uuid.UUID]*model.Store)}
}

func (r *stubStoreRepo) CreateTx(_ *gorm.DB, s *model.Store) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.stores[s.ID] = s
	return nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Store, error) {
	s, ok := r.stores[id]
	if !ok || s.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStoreRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.stores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.IsDeleted = true
	return nil
}

func (r *stubStoreRepo) DB() *gorm.DB { return nil }

// ── Member repo ───────────────────────────────────────────────────────────────

type stubMemberRepo struct {
	members []*model.StoreMember
}

var _ repository.StoreMemberRepository = (*stubMemberRepo)(nil)

func newStubMemberRepo() *stubMemberRepo { return &stubMemberRepo{} }

func (r *stubMemberRepo) CreateTx(_ *gorm.DB, m *model.StoreMember) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.members = append(r.members, m)
	return nil
}

func (r *stubMemberRepo) Exists(_ context.Context, storeID, userID uuid.UUID) (bool, error) {
	for _, m := range r.members {
		if m.StoreID == storeID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubMemberRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	return r.countByUser(userID), nil
}

func (r *stubMemberRepo) CountByUserTx(_ *gorm.DB, userID uuid.UUID) (int64, error) {
	return r.countByUser(userID), nil
}

func (r *stubMemberRepo) countByUser(userID uuid.UUID) int64 {
	var n int64
	for _, m := range r.members {
		if m.UserID == userID {
			n++
		}
	}
	return n
}

// ── User repo ─────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Category repo ─────────────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) List(_ context.Context, storeID uuid.UUID) ([]model.Category, error) {
	var result []model.Category
	for _, c := range r.categories {
		if c.StoreID == storeID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *stubCategoryRepo) CountChildren(_ context.Context, storeID, parentID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.categories {
		if c.StoreID == storeID && c.ParentID != nil && *c.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) DeleteByIDs(_ context.Context, storeID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var removed int64
	for _, id := range ids {
		if c, ok := r.categories[id]; ok && c.StoreID == storeID {
			delete(r.categories, id)
			removed++
		}
	}
	return removed, nil
}

// ── Storage repo ──────────────────────────────────────────────────────────────

type stubStorageRepo struct {
	storages map[uuid.UUID]*model.Storage
}

var _ repository.StorageRepository = (*stubStorageRepo)(nil)

func newStubStorageRepo() *stubStorageRepo {
	return &stubStorageRepo{storages: make(map[uuid.UUID]*model.Storage)}
}

func (r *stubStorageRepo) Create(_ context.Context, s *model.Storage) error {
	return r.CreateTx(nil, s)
}

func (r *stubStorageRepo) CreateTx(_ *gorm.DB, s *model.Storage) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.storages[s.ID] = s
	return nil
}

func (r *stubStorageRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*model.Storage, error) {
	s, ok := r.storages[id]
	if !ok || s.StoreID != storeID || s.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStorageRepo) List(_ context.Context, storeID uuid.UUID) ([]model.Storage, error) {
	var result []model.Storage
	for _, s := range r.storages {
		if s.StoreID == storeID && !s.IsDeleted {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *stubStorageRepo) SoftDeleteTx(_ *gorm.DB, storeID, id uuid.UUID) (int64, error) {
	s, ok := r.storages[id]
	if !ok || s.StoreID != storeID || s.IsDeleted {
		return 0, nil
	}
	s.IsDeleted = true
	s.Active = false
	s.IsPrimary = false
	return 1, nil
}

func (r *stubStorageRepo) UnsetPrimaryTx(_ *gorm.DB, storeID uuid.UUID) error {
	for _, s := range r.storages {
		if s.StoreID == storeID && !s.IsDeleted {
			s.IsPrimary = false
		}
	}
	return nil
}

func (r *stubStorageRepo) SetPrimaryTx(_ *gorm.DB, storeID, id uuid.UUID) (int64, error) {
	s, ok := r.storages[id]
	if !ok || s.StoreID != storeID || s.IsDeleted {
		return 0, nil
	}
	s.IsPrimary = true
	return 1, nil
}

func (r *stubStorageRepo) DB() *gorm.DB { return nil }

// ── Inventory lot repo ────────────────────────────────────────────────────────

type stubLotRepo struct {
	lots map[uuid.UUID]*model.InventoryLot
}

var _ repository.InventoryLotRepository = (*stubLotRepo)(nil)

func newStubLotRepo() *stubLotRepo {
	return &stubLotRepo{lots: make(map[uuid.UUID]*model.InventoryLot)}
}

func (r *stubLotRepo) CreateTx(_ *gorm.DB, lot *model.InventoryLot) error {
	if lot.ID == uuid.Nil {
		lot.ID = uuid.New()
	}
	r.lots[lot.ID] = lot
	return nil
}

func (r *stubLotRepo) ListByStorage(_ context.Context, storeID, storageID uuid.UUID) ([]model.InventoryLot, error) {
	var result []model.InventoryLot
	for _, l := range r.lots {
		if l.StoreID == storeID && l.StorageID == storageID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (r *stubLotRepo) CloseAllTx(_ *gorm.DB, storeID, storageID uuid.UUID) (int64, error) {
	var closed int64
	for _, l := range r.lots {
		if l.StoreID == storeID && l.StorageID == storageID && l.Status != model.LotClosed {
			l.Status = model.LotClosed
			closed++
		}
	}
	return closed, nil
}

// ── Active lot repo ───────────────────────────────────────────────────────────

type stubActiveLotRepo struct {
	pointers    map[uuid.UUID]*model.StorageActiveLot // keyed by storage id
	pooledReads int                                   // FindByStorage calls outside any transaction
}

var _ repository.StorageActiveLotRepository = (*stubActiveLotRepo)(nil)

func newStubActiveLotRepo() *stubActiveLotRepo {
	return &stubActiveLotRepo{pointers: make(map[uuid.UUID]*model.StorageActiveLot)}
}

func (r *stubActiveLotRepo) SetActiveTx(_ *gorm.DB, storeID, storageID, lotID uuid.UUID) error {
	p, ok := r.pointers[storageID]
	if !ok {
		p = &model.StorageActiveLot{ID: uuid.New(), StoreID: storeID, StorageID: storageID}
		r.pointers[storageID] = p
	}
	id := lotID
	p.ActiveLotID = &id
	return nil
}

func (r *stubActiveLotRepo) FindByStorage(_ context.Context, storeID, storageID uuid.UUID) (*model.StorageActiveLot, error) {
	r.pooledReads++
	return r.find(storeID, storageID)
}

func (r *stubActiveLotRepo) FindByStorageTx(_ *gorm.DB, storeID, storageID uuid.UUID) (*model.StorageActiveLot, error) {
	return r.find(storeID, storageID)
}

func (r *stubActiveLotRepo) find(storeID, storageID uuid.UUID) (*model.StorageActiveLot, error) {
	p, ok := r.pointers[storageID]
	if !ok || p.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubActiveLotRepo) ClearTx(_ *gorm.DB, storeID, storageID uuid.UUID) (int64, error) {
	p, ok := r.pointers[storageID]
	if !ok || p.StoreID != storeID || p.ActiveLotID == nil {
		return 0, nil
	}
	p.ActiveLotID = nil
	return 1, nil
}

// ── Balance repo ──────────────────────────────────────────────────────────────

type balanceKey struct{ storageID, productID uuid.UUID }

type stubBalanceRepo struct {
	balances map[balanceKey]*model.InventoryBalance
}

var _ repository.InventoryBalanceRepository = (*stubBalanceRepo)(nil)

func newStubBalanceRepo() *stubBalanceRepo {
	return &stubBalanceRepo{balances: make(map[balanceKey]*model.InventoryBalance)}
}

func (r *stubBalanceRepo) AddTx(_ *gorm.DB, storeID, storageID, productID uuid.UUID, qty, value decimal.Decimal) error {
	key := balanceKey{storageID, productID}
	b, ok := r.balances[key]
	if !ok {
		b = &model.InventoryBalance{
			ID:        uuid.New(),
			StoreID:   storeID,
			StorageID: storageID,
			ProductID: productID,
		}
		r.balances[key] = b
	}
	b.Quantity = b.Quantity.Add(qty)
	b.Value = b.Value.Add(value)
	return nil
}

func (r *stubBalanceRepo) ListByStorage(_ context.Context, storeID, storageID uuid.UUID) ([]model.InventoryBalance, error) {
	var result []model.InventoryBalance
	for _, b := range r.balances {
		if b.StoreID == storeID && b.StorageID == storageID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *stubBalanceRepo) DeleteAllTx(_ *gorm.DB, storeID, storageID uuid.UUID) (int64, error) {
	var purged int64
	for key, b := range r.balances {
		if b.StoreID == storeID && b.StorageID == storageID {
			delete(r.balances, key)
			purged++
		}
	}
	return purged, nil
}

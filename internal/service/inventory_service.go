package service

import (
	"context"
	"errors"
	"fmt"

	"storehub/internal/apierror"
	"storehub/internal/dto"
	"storehub/internal/model"
	"storehub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService handles stock intake and read access to lots and
// balances. Receiving stock opens a lot, points the storage at it when no
// lot is active yet, and bumps the balance row — all in one transaction.
type InventoryService interface {
	ReceiveStock(ctx context.Context, storeID uuid.UUID, req dto.ReceiveStockRequest) (*dto.ReceiveStockResponse, error)
	ListLots(ctx context.Context, storeID, storageID uuid.UUID) ([]dto.LotResponse, error)
	ListBalances(ctx context.Context, storeID, storageID uuid.UUID) ([]dto.BalanceResponse, error)
}

type inventoryService struct {
	db         *gorm.DB
	storages   repository.StorageRepository
	lots       repository.InventoryLotRepository
	activeLots repository.StorageActiveLotRepository
	balances   repository.InventoryBalanceRepository
}

func NewInventoryService(
	db *gorm.DB,
	storages repository.StorageRepository,
	lots repository.InventoryLotRepository,
	activeLots repository.StorageActiveLotRepository,
	balances repository.InventoryBalanceRepository,
) InventoryService {
	return &inventoryService{db: db, storages: storages, lots: lots, activeLots: activeLots, balances: balances}
}

func (s *inventoryService) ReceiveStock(ctx context.Context, storeID uuid.UUID, req dto.ReceiveStockRequest) (*dto.ReceiveStockResponse, error) {
	storageID, err := uuid.Parse(req.StorageID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed storage id", apierror.ErrInvalid)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed product id", apierror.ErrInvalid)
	}

	storage, err := s.storages.FindByID(ctx, storeID, storageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: storage not found in this store", apierror.ErrNotFound)
		}
		return nil, err
	}
	if !storage.Active {
		return nil, fmt.Errorf("%w: storage is not active", apierror.ErrInvalid)
	}

	lot := model.InventoryLot{
		StoreID:   storeID,
		StorageID: storageID,
		ProductID: productID,
		Status:    model.LotOpen,
		Quantity:  req.Quantity,
	}
	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.lots.CreateTx(tx, &lot); err != nil {
			return err
		}
		// First intake into an idle storage activates the new lot. The read
		// must go through tx: a pooled read here would hold a second
		// connection open mid-transaction and let two concurrent intakes
		// both see an idle storage.
		current, err := s.activeLots.FindByStorageTx(tx, storeID, storageID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if current == nil || current.ActiveLotID == nil {
			if err := s.activeLots.SetActiveTx(tx, storeID, storageID, lot.ID); err != nil {
				return err
			}
		}
		return s.balances.AddTx(tx, storeID, storageID, productID, req.Quantity, req.Quantity.Mul(req.UnitCost))
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.ReceiveStockResponse{LotID: lot.ID.String()}, nil
}

func (s *inventoryService) ListLots(ctx context.Context, storeID, storageID uuid.UUID) ([]dto.LotResponse, error) {
	lots, err := s.lots.ListByStorage(ctx, storeID, storageID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		result = append(result, dto.LotResponse{
			ID:        l.ID,
			StorageID: l.StorageID,
			ProductID: l.ProductID,
			Status:    l.Status,
			Quantity:  l.Quantity,
		})
	}
	return result, nil
}

func (s *inventoryService) ListBalances(ctx context.Context, storeID, storageID uuid.UUID) ([]dto.BalanceResponse, error) {
	balances, err := s.balances.ListByStorage(ctx, storeID, storageID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		result = append(result, dto.BalanceResponse{
			StorageID: b.StorageID,
			ProductID: b.ProductID,
			Quantity:  b.Quantity,
			Value:     b.Value,
		})
	}
	return result, nil
}

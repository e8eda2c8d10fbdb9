package service

import (
	"context"
	"fmt"

	"storehub/internal/dto"
	"storehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DecommissionService detaches a storage location from live inventory
// tracking: the active-lot pointer is cleared, every lot is closed, and all
// balance rows are purged — as one transaction. Re-running on an already
// decommissioned storage is a no-op that reports zero counts.
type DecommissionService interface {
	Decommission(ctx context.Context, storeID, storageID uuid.UUID) (*dto.DecommissionResponse, error)

	// DecommissionTx runs the same transition inside a caller-owned
	// transaction so it can compose with further steps (e.g. deleting the
	// storage row itself).
	DecommissionTx(tx *gorm.DB, storeID, storageID uuid.UUID) (*dto.DecommissionResponse, error)
}

type decommissionService struct {
	db         *gorm.DB
	activeLots repository.StorageActiveLotRepository
	lots       repository.InventoryLotRepository
	balances   repository.InventoryBalanceRepository
}

func NewDecommissionService(
	db *gorm.DB,
	activeLots repository.StorageActiveLotRepository,
	lots repository.InventoryLotRepository,
	balances repository.InventoryBalanceRepository,
) DecommissionService {
	return &decommissionService{db: db, activeLots: activeLots, lots: lots, balances: balances}
}

func (s *decommissionService) Decommission(ctx context.Context, storeID, storageID uuid.UUID) (*dto.DecommissionResponse, error) {
	var result *dto.DecommissionResponse
	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		result, err = s.DecommissionTx(tx, storeID, storageID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

func (s *decommissionService) DecommissionTx(tx *gorm.DB, storeID, storageID uuid.UUID) (*dto.DecommissionResponse, error) {
	cleared, err := s.activeLots.ClearTx(tx, storeID, storageID)
	if err != nil {
		return nil, fmt.Errorf("decommission: clear active lot: %w", err)
	}

	closed, err := s.lots.CloseAllTx(tx, storeID, storageID)
	if err != nil {
		return nil, fmt.Errorf("decommission: close lots: %w", err)
	}

	purged, err := s.balances.DeleteAllTx(tx, storeID, storageID)
	if err != nil {
		return nil, fmt.Errorf("decommission: purge balances: %w", err)
	}

	log.Info().
		Str("store_id", storeID.String()).
		Str("storage_id", storageID.String()).
		Int64("active_lots", cleared).
		Int64("lots", closed).
		Int64("balances", purged).
		Msg("storage decommissioned")

	return &dto.DecommissionResponse{ActiveLots: cleared, Lots: closed, Balances: purged}, nil
}

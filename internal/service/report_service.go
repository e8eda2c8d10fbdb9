package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"storehub/internal/apierror"
	"storehub/internal/infra"
	"storehub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService renders downloadable reports. Product names are resolved here
// so the PDF layer stays a pure renderer.
type ReportService interface {
	StockReportPDF(ctx context.Context, storeID, storageID uuid.UUID, w io.Writer) error
}

type reportService struct {
	stores   repository.StoreRepository
	storages repository.StorageRepository
	balances repository.InventoryBalanceRepository
	products repository.ProductRepository
}

func NewReportService(
	stores repository.StoreRepository,
	storages repository.StorageRepository,
	balances repository.InventoryBalanceRepository,
	products repository.ProductRepository,
) ReportService {
	return &reportService{stores: stores, storages: storages, balances: balances, products: products}
}

func (s *reportService) StockReportPDF(ctx context.Context, storeID, storageID uuid.UUID, w io.Writer) error {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: store not found", apierror.ErrNotFound)
		}
		return err
	}
	storage, err := s.storages.FindByID(ctx, storeID, storageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: storage not found in this store", apierror.ErrNotFound)
		}
		return err
	}

	balances, err := s.balances.ListByStorage(ctx, storeID, storageID)
	if err != nil {
		return err
	}

	lines := make([]infra.StockReportLine, 0, len(balances))
	for _, b := range balances {
		name := b.ProductID.String()
		if p, err := s.products.FindByID(ctx, storeID, b.ProductID); err == nil {
			name = p.Name
		}
		lines = append(lines, infra.StockReportLine{
			ProductName: name,
			Quantity:    b.Quantity,
			Value:       b.Value,
		})
	}

	return infra.GenerateStockReportPDF(store.Name, storage, lines, w)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storehub/internal/apierror"
	"storehub/internal/dto"
	"storehub/internal/model"
	"storehub/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const barcodeCacheTTL = 4 * time.Hour

// ProductService is thin tenant-scoped catalog CRUD. The barcode lookup is
// cached in Redis; mutations invalidate the cache best-effort.
type ProductService interface {
	Create(ctx context.Context, storeID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]dto.ProductResponse, error)
	Update(ctx context.Context, storeID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, storeID, id uuid.UUID) error
	LookupBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*dto.BarcodeLookupResponse, error)
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, storeID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var categoryID *uuid.UUID
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed category id", apierror.ErrInvalid)
		}
		categoryID = &id
	}

	p := &model.Product{
		StoreID:     storeID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Price:       req.Price,
		Active:      true,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if req.Barcode != nil && *req.Barcode != "" {
		b := &model.ProductBarcode{
			StoreID:   storeID,
			ProductID: p.ID,
			Barcode:   *req.Barcode,
		}
		if err := s.repo.CreateBarcode(ctx, b); err != nil {
			return nil, err
		}
	}

	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, storeID, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found in this store", apierror.ErrNotFound)
		}
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]dto.ProductResponse, error) {
	list, err := s.repo.List(ctx, storeID, activeOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapProduct(p))
	}
	return result, nil
}

func (s *productService) Update(ctx context.Context, storeID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found in this store", apierror.ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed category id", apierror.ErrInvalid)
		}
		p.CategoryID = &cid
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateBarcodeCache(ctx, storeID)
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, storeID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product not found in this store", apierror.ErrNotFound)
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, storeID, id); err != nil {
		return err
	}
	s.invalidateBarcodeCache(ctx, storeID)
	return nil
}

func (s *productService) LookupBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*dto.BarcodeLookupResponse, error) {
	cacheKey := barcodeCacheKey(storeID, barcode)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.BarcodeLookupResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, storeID, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: barcode not found in this store", apierror.ErrNotFound)
		}
		return nil, err
	}

	resp := &dto.BarcodeLookupResponse{
		ProductID: p.ID.String(),
		Name:      p.Name,
		Price:     p.Price,
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), cacheKey, b, barcodeCacheTTL).Err()
		}
	}
	return resp, nil
}

func barcodeCacheKey(storeID uuid.UUID, barcode string) string {
	return "barcode:" + storeID.String() + ":" + barcode
}

// invalidateBarcodeCache drops all cached lookups for the store. Keys are
// wildcard-scanned; a miss just means a stale entry expires via TTL.
func (s *productService) invalidateBarcodeCache(ctx context.Context, storeID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, "barcode:"+storeID.String()+":*", 100).Iterator()
	for iter.Next(ctx) {
		_ = s.rdb.Del(ctx, iter.Val()).Err()
	}
}

func mapProduct(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Active:      p.Active,
		Description: p.Description,
	}
}

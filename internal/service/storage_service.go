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

// StorageService manages storage locations. Decommission and Delete both run
// the atomic retire-and-purge transition; Delete additionally soft-deletes
// the storage row inside the same transaction.
type StorageService interface {
	Create(ctx context.Context, storeID uuid.UUID, req dto.CreateStorageRequest) (*dto.StorageResponse, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*dto.StorageResponse, error)
	List(ctx context.Context, storeID uuid.UUID) ([]dto.StorageResponse, error)
	Decommission(ctx context.Context, storeID, id uuid.UUID) (*dto.DecommissionResponse, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) (*dto.DecommissionResponse, error)
	PromotePrimary(ctx context.Context, storeID, id uuid.UUID) error
}

type storageService struct {
	repo         repository.StorageRepository
	decommission DecommissionService
}

func NewStorageService(repo repository.StorageRepository, decommission DecommissionService) StorageService {
	return &storageService{repo: repo, decommission: decommission}
}

func (s *storageService) Create(ctx context.Context, storeID uuid.UUID, req dto.CreateStorageRequest) (*dto.StorageResponse, error) {
	st := &model.Storage{
		StoreID:  storeID,
		Name:     req.Name,
		Capacity: req.Capacity,
		Active:   true,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	resp := mapStorage(*st)
	return &resp, nil
}

func (s *storageService) Get(ctx context.Context, storeID, id uuid.UUID) (*dto.StorageResponse, error) {
	st, err := s.findScoped(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	resp := mapStorage(*st)
	return &resp, nil
}

func (s *storageService) List(ctx context.Context, storeID uuid.UUID) ([]dto.StorageResponse, error) {
	list, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StorageResponse, 0, len(list))
	for _, st := range list {
		result = append(result, mapStorage(st))
	}
	return result, nil
}

func (s *storageService) Decommission(ctx context.Context, storeID, id uuid.UUID) (*dto.DecommissionResponse, error) {
	if _, err := s.findScoped(ctx, storeID, id); err != nil {
		return nil, err
	}
	return s.decommission.Decommission(ctx, storeID, id)
}

func (s *storageService) Delete(ctx context.Context, storeID, id uuid.UUID) (*dto.DecommissionResponse, error) {
	if _, err := s.findScoped(ctx, storeID, id); err != nil {
		return nil, err
	}

	var result *dto.DecommissionResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		result, err = s.decommission.DecommissionTx(tx, storeID, id)
		if err != nil {
			return err
		}
		affected, err := s.repo.SoftDeleteTx(tx, storeID, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			// The scoped lookup above saw the row; losing it mid-transaction
			// means a concurrent delete won.
			return fmt.Errorf("%w: storage not found in this store", apierror.ErrNotFound)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

func (s *storageService) PromotePrimary(ctx context.Context, storeID, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, storeID, id); err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UnsetPrimaryTx(tx, storeID); err != nil {
			return err
		}
		affected, err := s.repo.SetPrimaryTx(tx, storeID, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: storage not found in this store", apierror.ErrNotFound)
		}
		return nil
	})
}

func (s *storageService) findScoped(ctx context.Context, storeID, id uuid.UUID) (*model.Storage, error) {
	st, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: storage not found in this store", apierror.ErrNotFound)
		}
		return nil, err
	}
	return st, nil
}

func mapStorage(st model.Storage) dto.StorageResponse {
	return dto.StorageResponse{
		ID:        st.ID,
		Name:      st.Name,
		Capacity:  st.Capacity,
		IsPrimary: st.IsPrimary,
		Active:    st.Active,
	}
}

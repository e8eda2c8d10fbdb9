package service

import (
	"context"
	"fmt"

	"storehub/internal/apierror"
	"storehub/internal/config"
	"storehub/internal/dto"
	"storehub/internal/model"
	"storehub/internal/repository"
	"storehub/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StoreService provisions stores. Creating a store also creates the OWNER
// membership and a default primary storage location; the per-user quota is
// checked before any write, inside the same transaction, so a rejected
// request persists nothing.
type StoreService interface {
	CreateStore(ctx context.Context, userID uuid.UUID, req dto.CreateStoreRequest) (*dto.CreateStoreResponse, error)
	EnrolledCount(ctx context.Context, userID uuid.UUID) (*dto.EnrolledCountResponse, error)
}

type storeService struct {
	stores     repository.StoreRepository
	members    repository.StoreMemberRepository
	storages   repository.StorageRepository
	users      repository.UserRepository
	cfg        *config.Config
	dispatcher *worker.Dispatcher
}

func NewStoreService(
	stores repository.StoreRepository,
	members repository.StoreMemberRepository,
	storages repository.StorageRepository,
	users repository.UserRepository,
	cfg *config.Config,
	dispatcher *worker.Dispatcher,
) StoreService {
	return &storeService{
		stores:     stores,
		members:    members,
		storages:   storages,
		users:      users,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

func (s *storeService) CreateStore(ctx context.Context, userID uuid.UUID, req dto.CreateStoreRequest) (*dto.CreateStoreResponse, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", apierror.ErrInvalid)
	}

	capacity, err := decimal.NewFromString(s.cfg.DefaultStorageCapacity)
	if err != nil {
		return nil, fmt.Errorf("provisioning: bad default capacity %q: %w", s.cfg.DefaultStorageCapacity, err)
	}

	var store model.Store
	txErr := runTx(ctx, s.stores.DB(), func(tx *gorm.DB) error {
		// Quota first — before any row exists. A concurrent create for the
		// same user is serialized by the enclosing transaction.
		enrolled, err := s.members.CountByUserTx(tx, userID)
		if err != nil {
			return err
		}
		if enrolled >= int64(s.cfg.MaxStoresPerUser) {
			return fmt.Errorf("%w: user already enrolled in %d stores (max %d)",
				apierror.ErrQuotaExceeded, enrolled, s.cfg.MaxStoresPerUser)
		}

		store = model.Store{Name: req.Name}
		if err := s.stores.CreateTx(tx, &store); err != nil {
			return err
		}

		member := model.StoreMember{
			StoreID: store.ID,
			UserID:  userID,
			Role:    model.RoleOwner,
		}
		if err := s.members.CreateTx(tx, &member); err != nil {
			return err
		}

		defaultStorage := model.Storage{
			StoreID:   store.ID,
			Name:      s.cfg.DefaultStorageName,
			Capacity:  capacity,
			IsPrimary: true,
			Active:    true,
		}
		return s.storages.CreateTx(tx, &defaultStorage)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Welcome email — best effort, fire and forget.
	if s.dispatcher != nil {
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
				ToEmail: user.Email,
				Subject: "Your store is ready",
				Body:    fmt.Sprintf("Hi %s, your store %q has been created.", user.Name, store.Name),
			})
		}
	}

	return &dto.CreateStoreResponse{StoreID: store.ID.String()}, nil
}

func (s *storeService) EnrolledCount(ctx context.Context, userID uuid.UUID) (*dto.EnrolledCountResponse, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", apierror.ErrInvalid)
	}
	count, err := s.members.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.EnrolledCountResponse{Count: count}, nil
}

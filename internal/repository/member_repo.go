package repository

import (
	"context"

	"storehub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreMemberRepository manages store membership rows. A (store_id, user_id)
// row is the sole grant of tenant access.
type StoreMemberRepository interface {
	CreateTx(tx *gorm.DB, m *model.StoreMember) error
	Exists(ctx context.Context, storeID, userID uuid.UUID) (bool, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CountByUserTx runs the enrollment count inside the caller's transaction
	// so provisioning can check the quota and insert atomically.
	CountByUserTx(tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type memberRepo struct{ db *gorm.DB }

func NewStoreMemberRepository(db *gorm.DB) StoreMemberRepository { return &memberRepo{db: db} }

func (r *memberRepo) CreateTx(tx *gorm.DB, m *model.StoreMember) error {
	return tx.Create(m).Error
}

func (r *memberRepo) Exists(ctx context.Context, storeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StoreMember{}).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *memberRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StoreMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *memberRepo) CountByUserTx(tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&model.StoreMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

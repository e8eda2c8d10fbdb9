package repository

import (
	"context"

	"storehub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines tenant-scoped CRUD for categories. Every lookup
// filters by store_id; an id that exists under another store behaves exactly
// like an id that does not exist at all.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context, storeID uuid.UUID) ([]model.Category, error)
	CountChildren(ctx context.Context, storeID, parentID uuid.UUID) (int64, error)
	Update(ctx context.Context, c *model.Category) error

	// DeleteByIDs removes the given categories within one store and returns
	// the number of rows actually deleted — ids outside the store are skipped
	// by the scoping filter, not reported as errors.
	DeleteByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context, storeID uuid.UUID) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("layer asc, name asc").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) CountChildren(ctx context.Context, storeID, parentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("store_id = ? AND parent_id = ?", storeID, parentID).
		Count(&count).Error
	return count, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepo) DeleteByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("store_id = ? AND id IN ?", storeID, ids).
		Delete(&model.Category{})
	return res.RowsAffected, res.Error
}

package repository

import (
	"context"

	"storehub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines tenant-scoped data access for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*model.Product, error)
	List(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, storeID, id uuid.UUID) error

	CreateBarcode(ctx context.Context, b *model.ProductBarcode) error
	CreatePack(ctx context.Context, p *model.ProductPack) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*model.Product, error) {
	var b model.ProductBarcode
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND barcode = ?", storeID, barcode).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, storeID, b.ProductID)
}

func (r *productRepo) List(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]model.Product, error) {
	var list []model.Product
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if activeOnly {
		q = q.Where("active = true")
	}
	err := q.Order("name asc").Find(&list).Error
	return list, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, storeID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND store_id = ?", id, storeID).
		Update("active", false).Error
}

func (r *productRepo) CreateBarcode(ctx context.Context, b *model.ProductBarcode) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *productRepo) CreatePack(ctx context.Context, p *model.ProductPack) error {
	return r.db.WithContext(ctx).Create(p).Error
}

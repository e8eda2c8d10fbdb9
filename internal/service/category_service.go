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

// CategoryService enforces the hierarchy invariants on category mutations:
// a non-root category may only reference a parent that already exists in the
// same store, and root-layer categories never carry a parent. Parents must
// exist before children, so the forest stays cycle-free by construction.
type CategoryService interface {
	Create(ctx context.Context, storeID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CreateCategoryResponse, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context, storeID uuid.UUID) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, storeID, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Remove(ctx context.Context, storeID uuid.UUID, ids []string) (*dto.RemoveCategoriesResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// resolveParent normalizes the request's parent reference. Omitted, empty,
// and nil-UUID values all mean "root category".
func resolveParent(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed parent id", apierror.ErrInvalid)
	}
	if id == uuid.Nil {
		return nil, nil
	}
	return &id, nil
}

func (s *categoryService) Create(ctx context.Context, storeID uuid.UUID, req dto.CreateCategoryRequest) (*dto.CreateCategoryResponse, error) {
	parentID, err := resolveParent(req.ParentID)
	if err != nil {
		return nil, err
	}

	if req.Layer == model.RootLayer && parentID != nil {
		return nil, fmt.Errorf("%w: a root category cannot have a parent", apierror.ErrInvalid)
	}

	if req.Layer != model.RootLayer && parentID != nil {
		// The parent must be visible inside this store. Nothing is persisted
		// when the lookup fails.
		if _, err := s.repo.FindByID(ctx, storeID, *parentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent category not found in this store", apierror.ErrNotFound)
			}
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = model.CategoryActive
	}

	c := &model.Category{
		StoreID:       storeID,
		Name:          req.Name,
		ParentID:      parentID,
		Layer:         req.Layer,
		Status:        status,
		ColorSettings: req.ColorSettings,
		Description:   req.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CreateCategoryResponse{CategoryID: c.ID.String()}, nil
}

func (s *categoryService) Get(ctx context.Context, storeID, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found in this store", apierror.ErrNotFound)
		}
		return nil, err
	}

	// countChildren is a live read-time aggregate, never cached.
	children, err := s.repo.CountChildren(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := mapCategory(*c)
	resp.CountChildren = children
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context, storeID uuid.UUID) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, storeID, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found in this store", apierror.ErrNotFound)
		}
		return nil, err
	}

	// Re-parenting is deliberately unsupported: moving a node is the only
	// mutation that could introduce a cycle into the forest.
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.ColorSettings != nil {
		c.ColorSettings = req.ColorSettings
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

// Remove deletes the given categories within the store and reports how many
// rows actually went away; ids belonging to another store are silently skipped
// by the tenant filter. Children of removed parents are left untouched: they
// keep their (now dangling) parent reference rather than being re-parented or
// cascaded.
func (s *categoryService) Remove(ctx context.Context, storeID uuid.UUID, ids []string) (*dto.RemoveCategoriesResponse, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: category id list must not be empty", apierror.ErrInvalid)
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed category id %q", apierror.ErrInvalid, raw)
		}
		parsed = append(parsed, id)
	}

	removed, err := s.repo.DeleteByIDs(ctx, storeID, parsed)
	if err != nil {
		return nil, err
	}
	return &dto.RemoveCategoriesResponse{RemovedCount: removed}, nil
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		ParentID:      c.ParentID,
		Layer:         c.Layer,
		Status:        c.Status,
		ColorSettings: c.ColorSettings,
		Description:   c.Description,
	}
}

package catalog

import (
	"context"
	"fmt"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Service implements the product catalog operations on top of the
// repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenantID int64, req CreateProductRequest) (*Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", shared.ErrValidation)
	}

	id, err := s.repo.Create(ctx, Product{
		TenantID:    tenantID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Brand:       req.Brand,
		Weight:      req.Weight,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (*Product, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID int64, req ListProductsRequest) ([]Product, shared.Pagination, error) {
	products, total, err := s.repo.List(ctx, tenantID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return products, shared.NewPagination(req.Page, req.Limit, total), nil
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateProductRequest) (*Product, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price must not be negative: %w", shared.ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, fmt.Errorf("weight must not be negative: %w", shared.ErrValidation)
		}
		updates["weight"] = *req.Weight
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, tenantID, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

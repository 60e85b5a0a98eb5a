package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// DecrementStock applies a sale's stock side effect. Stock is floored at
	// zero: over-selling clamps rather than failing.
	DecrementStock(ctx context.Context, quantities map[string]int) error
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if req.Price < 0 || req.Cost < 0 {
		return nil, fmt.Errorf("price and cost must be >= 0")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock must be >= 0")
	}
	p := &Product{
		ID:          "prod-" + uuid.New().String()[:8],
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price must be >= 0")
		}
		p.Price = *req.Price
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, fmt.Errorf("cost must be >= 0")
		}
		p.Cost = *req.Cost
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock must be >= 0")
		}
		p.Stock = *req.Stock
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) DecrementStock(ctx context.Context, quantities map[string]int) error {
	for id, qty := range quantities {
		if qty < 0 {
			return fmt.Errorf("quantity must be >= 0 for product %s", id)
		}
	}
	return s.repo.DecrementStock(ctx, quantities)
}

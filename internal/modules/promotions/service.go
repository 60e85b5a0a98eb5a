package promotions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/uchu51/restobar-backend/internal/modules/catalog"
	"github.com/uchu51/restobar-backend/internal/modules/orders"
)

// Service defines promotion business logic.
type Service interface {
	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*Promotion, error)
	GetPromotion(ctx context.Context, id string) (*Promotion, error)
	ListPromotions(ctx context.Context, activeOnly bool) ([]*Promotion, error)
	UpdatePromotion(ctx context.Context, id string, req CreatePromotionRequest) (*Promotion, error)
	DeletePromotion(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) (*Promotion, error)

	// GetApplicable returns the active promotions an order qualifies for.
	GetApplicable(ctx context.Context, orderID string) ([]*Promotion, error)

	// ApplyToOrder rewrites an order's items with a promotion's pricing.
	ApplyToOrder(ctx context.Context, req ApplyRequest) (*orders.Order, error)

	// StorefrontItems synthesizes promotion lines from the catalog, for
	// adding a promotion to an empty cart.
	StorefrontItems(ctx context.Context, promotionID string) ([]orders.OrderItem, error)
}

type service struct {
	repo    Repository
	orders  orders.Service
	catalog catalog.Service
}

// NewService creates a new promotion service.
func NewService(repo Repository, ordersSvc orders.Service, catalogSvc catalog.Service) Service {
	return &service{repo: repo, orders: ordersSvc, catalog: catalogSvc}
}

func (s *service) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*Promotion, error) {
	p, err := buildPromotion(req)
	if err != nil {
		return nil, err
	}
	p.ID = "promo-" + uuid.New().String()[:8]
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func buildPromotion(req CreatePromotionRequest) (*Promotion, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	kind := Kind(strings.ToUpper(req.Kind))
	switch kind {
	case KindFixedCombo:
		if len(req.Conditions.Products) == 0 {
			return nil, fmt.Errorf("a fixed combo requires at least one product")
		}
		for _, ci := range req.Conditions.Products {
			if ci.Quantity <= 0 {
				return nil, fmt.Errorf("combo quantity must be > 0 for product %s", ci.ProductID)
			}
		}
		if req.Conditions.FixedPrice <= 0 {
			return nil, fmt.Errorf("fixed_price must be > 0")
		}
	case KindTwoForOne:
		if req.Conditions.ProductID == "" {
			return nil, fmt.Errorf("a two-for-one requires a product_id")
		}
	default:
		return nil, fmt.Errorf("invalid kind: %q (allowed: FIXED_COMBO, TWO_FOR_ONE)", req.Kind)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &Promotion{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Kind:        kind,
		Active:      active,
		Conditions:  req.Conditions,
	}, nil
}

func (s *service) GetPromotion(ctx context.Context, id string) (*Promotion, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) ListPromotions(ctx context.Context, activeOnly bool) ([]*Promotion, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return all, nil
	}
	var out []*Promotion
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) UpdatePromotion(ctx context.Context, id string, req CreatePromotionRequest) (*Promotion, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	p, err := buildPromotion(req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePromotion(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) SetActive(ctx context.Context, id string, active bool) (*Promotion, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Active = active
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetApplicable(ctx context.Context, orderID string) ([]*Promotion, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	active, err := s.ListPromotions(ctx, true)
	if err != nil {
		return nil, err
	}
	return Applicable(o.Items, active), nil
}

func (s *service) ApplyToOrder(ctx context.Context, req ApplyRequest) (*orders.Order, error) {
	p, err := s.repo.Get(ctx, req.PromotionID)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.Get(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	items, err := Apply(o.Items, p, func(id string) (*catalog.Product, error) {
		return s.catalog.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return s.orders.ReplaceItems(ctx, req.OrderID, items)
}

func (s *service) StorefrontItems(ctx context.Context, promotionID string) ([]orders.OrderItem, error) {
	p, err := s.repo.Get(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	return CartItems(p, func(id string) (*catalog.Product, error) {
		return s.catalog.GetProduct(ctx, id)
	})
}

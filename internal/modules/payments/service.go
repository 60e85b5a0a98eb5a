package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/uchu51/restobar-backend/internal/metrics"
	"github.com/uchu51/restobar-backend/internal/modules/caja"
	"github.com/uchu51/restobar-backend/internal/modules/catalog"
	"github.com/uchu51/restobar-backend/internal/modules/loyalty"
	"github.com/uchu51/restobar-backend/internal/modules/orders"
)

// Service settles orders: it marks them paid and fans the side effects out
// to the till, the stock counts, and the loyalty balance.
type Service interface {
	Register(ctx context.Context, req RegisterPaymentRequest) (*Receipt, error)
}

type service struct {
	ordersSvc  orders.Service
	catalogSvc catalog.Service
	cajaSvc    caja.Service
	loyaltySvc loyalty.Service
}

func NewService(ordersSvc orders.Service, catalogSvc catalog.Service, cajaSvc caja.Service, loyaltySvc loyalty.Service) Service {
	return &service{
		ordersSvc:  ordersSvc,
		catalogSvc: catalogSvc,
		cajaSvc:    cajaSvc,
		loyaltySvc: loyaltySvc,
	}
}

func (s *service) Register(ctx context.Context, req RegisterPaymentRequest) (*Receipt, error) {
	if req.OrderID == "" {
		return nil, fmt.Errorf("order_id is required")
	}
	method, err := orders.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}
	role := orders.ParseRoleOr(req.Role, orders.RoleReceptionist)

	order, err := s.ordersSvc.Get(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	margin, err := s.marginFor(ctx, order)
	if err != nil {
		return nil, err
	}

	paid, err := s.ordersSvc.MarkPaid(ctx, req.OrderID, method, req.Tendered, role)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		OrderID: paid.ID,
		Method:  string(method),
		Total:   paid.Total,
		Margin:  margin,
	}
	if paid.Payment != nil {
		receipt.Change = paid.Payment.Change
	}

	// A closed till does not block the sale; everything else does surface.
	if _, err := s.cajaSvc.RegisterSale(ctx, string(method), paid.Total, margin); err != nil {
		if !errors.Is(err, caja.ErrSessionClosed) {
			return nil, err
		}
		log.Printf("payment %s registered with no open caja session", paid.ID)
	} else {
		receipt.TillRegistered = true
	}

	if err := s.catalogSvc.DecrementStock(ctx, stockDelta(paid)); err != nil {
		return nil, err
	}

	points, err := s.loyaltySvc.Accrue(ctx, paid)
	if err != nil {
		return nil, err
	}
	if points > 0 {
		if _, err := s.ordersSvc.StampPoints(ctx, paid.ID, points); err != nil {
			return nil, err
		}
	}
	receipt.PointsEarned = points

	metrics.PaymentsRegistered.Inc()
	return receipt, nil
}

// marginFor computes total minus the catalog cost of every line. Lines
// whose product no longer exists in the catalog contribute zero cost.
func (s *service) marginFor(ctx context.Context, order *orders.Order) (float64, error) {
	cost := 0.0
	for _, item := range order.Items {
		p, err := s.catalogSvc.GetProduct(ctx, item.ProductID)
		if err != nil {
			continue
		}
		cost += p.Cost * float64(item.Quantity)
	}
	return round2(order.Total - cost), nil
}

func stockDelta(order *orders.Order) map[string]int {
	delta := map[string]int{}
	for _, item := range order.Items {
		if item.ProductID == "" {
			continue
		}
		delta[item.ProductID] += item.Quantity
	}
	return delta
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

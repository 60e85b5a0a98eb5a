package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uchu51/restobar-backend/internal/metrics"
	"github.com/uchu51/restobar-backend/internal/modules/catalog"
)

// tableCount is how many dine-in tables the floor has.
const tableCount = 16

// Service defines order lifecycle business logic.
type Service interface {
	// Create places a new order and computes its initial status from the
	// order kind and payment method.
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)

	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)

	// Transition advances an order's status, appending one history entry.
	// PAID is rejected here; it is reachable only through payment
	// registration.
	Transition(ctx context.Context, id string, req TransitionRequest) (*Order, error)

	AssignDriver(ctx context.Context, id, driver string) (*Order, error)
	AssignCook(ctx context.Context, id, cook string) (*Order, error)

	// UpdateItems replaces an order's line items (dine-in editing between
	// kitchen sends). Lines that match an already-sent line keep their
	// sent flag; new or changed lines are marked unsent.
	UpdateItems(ctx context.Context, id string, req UpdateItemsRequest) (*Order, error)

	// ReplaceItems swaps in an already-priced item set (promotion engine,
	// reward redemption) and recomputes the total.
	ReplaceItems(ctx context.Context, id string, items []OrderItem) (*Order, error)

	// SendToKitchen marks every line item as transmitted and moves a NEW
	// order into PREPARING.
	SendToKitchen(ctx context.Context, id string, role ActorRole) (*Order, error)

	// MarkPaid finalizes an order: status PAID, history entry, payment
	// record with computed change. Used by payment registration only.
	MarkPaid(ctx context.Context, id string, method PaymentMethod, tendered float64, role ActorRole) (*Order, error)

	// StampPoints records the loyalty points a payment earned, for the
	// receipt.
	StampPoints(ctx context.Context, id string, points int) (*Order, error)

	// Query surface: pure projections over the collection, recomputed on
	// every call.
	ListByShift(ctx context.Context, shift Shift) ([]*Order, error)
	ListOpen(ctx context.Context) ([]*Order, error)
	ListPickupAwaitingPayment(ctx context.Context) ([]*Order, error)
	ListPaidSince(ctx context.Context, since time.Time) ([]*Order, error)
	TableOccupancy(ctx context.Context) ([]TableStatus, error)
}

type service struct {
	repo    Repository
	catalog catalog.Service
	now     func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository, catalogSvc catalog.Service) Service {
	return &service{repo: repo, catalog: catalogSvc, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	kind, err := parseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	method, err := parseMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if req.Customer.Name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if kind == KindDelivery {
		if req.Customer.Address == "" {
			return nil, fmt.Errorf("address is required for delivery orders")
		}
		if !phonePattern.MatchString(req.Customer.Phone) {
			return nil, fmt.Errorf("phone must be 9 digits for delivery orders")
		}
	}
	if kind == KindDineIn && (req.Customer.Table < 1 || req.Customer.Table > tableCount) {
		return nil, fmt.Errorf("table must be between 1 and %d for dine-in orders", tableCount)
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	total := CalculateTotal(items)

	if req.CashTendered != 0 {
		if method != MethodCash {
			return nil, fmt.Errorf("cash_tendered only applies to cash payments")
		}
		if req.CashTendered < total {
			return nil, fmt.Errorf("cash_tendered must be >= order total")
		}
	}

	now := s.now()
	status := initialStatus(kind, method)
	role := parseRoleOr(req.Role, RoleCustomer)
	minutes := req.EstimatedMinutes
	if minutes <= 0 {
		if kind == KindDelivery {
			minutes = 30
		} else {
			minutes = 15
		}
	}

	o := &Order{
		ID:               generateOrderID(now),
		CreatedAt:        now,
		Kind:             kind,
		Status:           status,
		Shift:            parseShiftOr(req.Shift, shiftForTime(now)),
		Customer:         req.Customer,
		Items:            items,
		Total:            total,
		PaymentMethod:    method,
		CashTendered:     req.CashTendered,
		ExactCash:        req.ExactCash && method == MethodCash,
		Notes:            req.Notes,
		EstimatedMinutes: minutes,
		PrepArea:         prepAreaFor(kind),
		History:          []HistoryEntry{{Status: status, At: now, Role: role}},
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	metrics.OrdersCreated.Inc()
	return o, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

func (s *service) Transition(ctx context.Context, id string, req TransitionRequest) (*Order, error) {
	target, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	role := parseRoleOr(req.Role, RoleAdmin)
	return s.repo.Update(ctx, id, func(o *Order) error {
		if err := canTransition(o, target); err != nil {
			return err
		}
		o.Status = target
		o.History = append(o.History, HistoryEntry{Status: target, At: s.now(), Role: role})
		return nil
	})
}

func (s *service) AssignDriver(ctx context.Context, id, driver string) (*Order, error) {
	if driver == "" {
		return nil, fmt.Errorf("driver name is required")
	}
	return s.repo.Update(ctx, id, func(o *Order) error {
		if o.Kind != KindDelivery {
			return fmt.Errorf("only delivery orders take a driver")
		}
		o.AssignedDriver = driver
		return nil
	})
}

func (s *service) AssignCook(ctx context.Context, id, cook string) (*Order, error) {
	if cook == "" {
		return nil, fmt.Errorf("cook name is required")
	}
	return s.repo.Update(ctx, id, func(o *Order) error {
		o.AssignedCook = cook
		return nil
	})
}

func (s *service) UpdateItems(ctx context.Context, id string, req UpdateItemsRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, func(o *Order) error {
		if isTerminalFor(o, o.Status) {
			return fmt.Errorf("%w: order %s is %s", ErrTerminalStatus, o.ID, o.Status)
		}
		for i := range items {
			items[i].SentToKitchen = hasSentTwin(o.Items, items[i])
		}
		o.Items = items
		o.Total = CalculateTotal(o.Items)
		return nil
	})
}

func (s *service) ReplaceItems(ctx context.Context, id string, items []OrderItem) (*Order, error) {
	return s.repo.Update(ctx, id, func(o *Order) error {
		if isTerminalFor(o, o.Status) {
			return fmt.Errorf("%w: order %s is %s", ErrTerminalStatus, o.ID, o.Status)
		}
		o.Items = items
		o.Total = CalculateTotal(o.Items)
		return nil
	})
}

func (s *service) SendToKitchen(ctx context.Context, id string, role ActorRole) (*Order, error) {
	return s.repo.Update(ctx, id, func(o *Order) error {
		if isTerminalFor(o, o.Status) {
			return fmt.Errorf("%w: order %s is %s", ErrTerminalStatus, o.ID, o.Status)
		}
		if len(o.Items) == 0 {
			return fmt.Errorf("order has no items to send")
		}
		for i := range o.Items {
			o.Items[i].SentToKitchen = true
		}
		if o.Status == StatusNew || o.Status == StatusConfirmed {
			o.Status = StatusPreparing
			o.History = append(o.History, HistoryEntry{Status: StatusPreparing, At: s.now(), Role: role})
		}
		return nil
	})
}

func (s *service) MarkPaid(ctx context.Context, id string, method PaymentMethod, tendered float64, role ActorRole) (*Order, error) {
	return s.repo.Update(ctx, id, func(o *Order) error {
		switch o.Status {
		case StatusPaid:
			return fmt.Errorf("%w: %s", ErrAlreadyPaid, o.ID)
		case StatusCancelled, StatusPickedUp:
			return fmt.Errorf("%w: order %s is %s", ErrTerminalStatus, o.ID, o.Status)
		}
		now := s.now()
		var change float64
		if method == MethodCash && tendered >= o.Total {
			change = round2(tendered - o.Total)
		}
		o.Status = StatusPaid
		o.PaymentMethod = method
		o.History = append(o.History, HistoryEntry{Status: StatusPaid, At: now, Role: role})
		o.Payment = &PaymentRecord{
			Method:   method,
			Total:    o.Total,
			Tendered: tendered,
			Change:   change,
			PaidAt:   now,
		}
		return nil
	})
}

func (s *service) StampPoints(ctx context.Context, id string, points int) (*Order, error) {
	return s.repo.Update(ctx, id, func(o *Order) error {
		o.PointsEarned = points
		return nil
	})
}

// ── query surface ─────────────────────────────────────────────────────────────

func (s *service) ListByShift(ctx context.Context, shift Shift) ([]*Order, error) {
	return s.filter(ctx, func(o *Order) bool { return o.Shift == shift })
}

func (s *service) ListOpen(ctx context.Context) ([]*Order, error) {
	return s.filter(ctx, isOpen)
}

func (s *service) ListPickupAwaitingPayment(ctx context.Context) ([]*Order, error) {
	return s.filter(ctx, func(o *Order) bool {
		return o.Kind == KindPickup && o.Status == StatusReady &&
			(o.PaymentMethod == MethodCash || o.PaymentMethod == MethodCard)
	})
}

func (s *service) ListPaidSince(ctx context.Context, since time.Time) ([]*Order, error) {
	return s.filter(ctx, func(o *Order) bool {
		return o.Status == StatusPaid && o.Payment != nil && !o.Payment.PaidAt.Before(since)
	})
}

func (s *service) TableOccupancy(ctx context.Context) ([]TableStatus, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	tables := make([]TableStatus, tableCount)
	for i := range tables {
		tables[i] = TableStatus{Table: i + 1}
	}
	for _, o := range all {
		if o.Kind != KindDineIn || !isOpen(o) {
			continue
		}
		n := o.Customer.Table
		if n >= 1 && n <= tableCount && !tables[n-1].Occupied {
			tables[n-1] = TableStatus{Table: n, Occupied: true, OrderID: o.ID, Status: o.Status}
		}
	}
	return tables, nil
}

func (s *service) filter(ctx context.Context, keep func(*Order) bool) ([]*Order, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*Order
	for _, o := range all {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func isOpen(o *Order) bool {
	return o.Status != StatusPaid && o.Status != StatusCancelled
}

// ── item building ─────────────────────────────────────────────────────────────

// buildItems snapshots names and prices from the catalog. Promotion lines may
// carry a discounted price, validated against the catalog price; reward lines
// are forced to zero.
func (s *service) buildItems(ctx context.Context, reqs []CartItemRequest) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(reqs))
	for _, ci := range reqs {
		if ci.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for product %s", ci.ProductID)
		}
		item := OrderItem{
			ProductID:     ci.ProductID,
			Quantity:      ci.Quantity,
			Sauces:        ci.Sauces,
			Specification: ci.Specification,
			PromotionID:   ci.PromotionID,
			IsReward:      ci.IsReward,
		}
		switch {
		case ci.IsReward:
			item.Price = 0
			item.Name = ci.RewardName
			if p, err := s.catalog.GetProduct(ctx, ci.ProductID); err == nil {
				if item.Name == "" {
					item.Name = p.Name + " [CANJE]"
				}
			} else if item.Name == "" {
				return nil, fmt.Errorf("reward line %s needs a reward_name", ci.ProductID)
			}
		case ci.PromotionID != "":
			p, err := s.catalog.GetProduct(ctx, ci.ProductID)
			if err != nil {
				return nil, fmt.Errorf("product %s not found", ci.ProductID)
			}
			if ci.Price < 0 || ci.Price > p.Price {
				return nil, fmt.Errorf("promotion price for %s must be between 0 and %.2f", ci.ProductID, p.Price)
			}
			item.Name = p.Name
			item.Price = ci.Price
			item.OriginalPrice = p.Price
		default:
			p, err := s.catalog.GetProduct(ctx, ci.ProductID)
			if err != nil {
				return nil, fmt.Errorf("product %s not found", ci.ProductID)
			}
			item.Name = p.Name
			item.Price = p.Price
		}
		items = append(items, item)
	}
	return items, nil
}

// hasSentTwin reports whether an identical line was already sent to the
// kitchen, so re-submitting the same list doesn't re-fire it. Any change in
// quantity, price, or composition yields a fresh unsent line.
func hasSentTwin(existing []OrderItem, item OrderItem) bool {
	for _, e := range existing {
		if e.SentToKitchen &&
			e.ProductID == item.ProductID &&
			e.Quantity == item.Quantity &&
			e.Price == item.Price &&
			e.PromotionID == item.PromotionID &&
			e.IsReward == item.IsReward &&
			e.Specification == item.Specification &&
			sauceKey(e.Sauces) == sauceKey(item.Sauces) {
			return true
		}
	}
	return false
}

func sauceKey(sauces []Sauce) string {
	names := make([]string, len(sauces))
	for i, s := range sauces {
		names[i] = s.Name
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateOrderID creates a human-readable order ID: PED-YYYYMMDD-XXXX.
// The date prefix keeps IDs roughly sorted by creation time.
func generateOrderID(now time.Time) string {
	date := now.UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("PED-%s-%s", date, suffix)
}

func shiftForTime(t time.Time) Shift {
	switch h := t.Hour(); {
	case h < 12:
		return ShiftMorning
	case h < 18:
		return ShiftAfternoon
	default:
		return ShiftEvening
	}
}

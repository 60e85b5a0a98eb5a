package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/uchu51/restobar-backend/internal/modules/caja"
	"github.com/uchu51/restobar-backend/internal/modules/catalog"
	"github.com/uchu51/restobar-backend/internal/modules/loyalty"
	"github.com/uchu51/restobar-backend/internal/modules/orders"
	"github.com/uchu51/restobar-backend/internal/snapshot"
)

type fixture struct {
	payments Service
	orders   orders.Service
	catalog  catalog.Service
	caja     caja.Service
	loyalty  loyalty.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	catRepo, err := catalog.NewMemoryRepository(ctx, snapshot.NewNoop())
	if err != nil {
		t.Fatalf("building catalog repository: %v", err)
	}
	catalogSvc := catalog.NewService(catRepo)

	ordersRepo, err := orders.NewMemoryRepository(ctx, snapshot.NewNoop())
	if err != nil {
		t.Fatalf("building order repository: %v", err)
	}
	ordersSvc := orders.NewService(ordersRepo, catalogSvc)

	cajaRepo, err := caja.NewMemoryRepository(ctx, snapshot.NewNoop())
	if err != nil {
		t.Fatalf("building caja repository: %v", err)
	}
	cajaSvc := caja.NewService(cajaRepo)

	loyaltyRepo, err := loyalty.NewMemoryRepository(ctx, snapshot.NewNoop())
	if err != nil {
		t.Fatalf("building loyalty repository: %v", err)
	}
	loyaltySvc := loyalty.NewService(loyaltyRepo, ordersSvc)

	return &fixture{
		payments: NewService(ordersSvc, catalogSvc, cajaSvc, loyaltySvc),
		orders:   ordersSvc,
		catalog:  catalogSvc,
		caja:     cajaSvc,
		loyalty:  loyaltySvc,
	}
}

func (f *fixture) pickupOrder(t *testing.T, phone string) *orders.Order {
	t.Helper()
	o, err := f.orders.Create(context.Background(), orders.CreateOrderRequest{
		Kind:          "PICKUP",
		PaymentMethod: "CASH",
		Customer:      orders.CustomerInfo{Name: "Jorge", Phone: phone},
		Items:         []orders.CartItemRequest{{ProductID: "prod-101", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("placing order: %v", err)
	}
	return o
}

func TestRegisterCashPaymentFansOutSideEffects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.caja.Open(ctx, caja.OpenRequest{OpeningFloat: 100.00}); err != nil {
		t.Fatalf("opening till: %v", err)
	}
	o := f.pickupOrder(t, "911222333")

	receipt, err := f.payments.Register(ctx, RegisterPaymentRequest{
		OrderID:  o.ID,
		Method:   "CASH",
		Tendered: 50.00,
	})
	if err != nil {
		t.Fatalf("registering payment: %v", err)
	}

	if receipt.Total != 20.00 || receipt.Change != 30.00 {
		t.Errorf("receipt totals: %+v", receipt)
	}
	if receipt.Margin != 12.00 {
		t.Errorf("expected margin 12.00, got %v", receipt.Margin)
	}
	if !receipt.TillRegistered {
		t.Error("sale should land on the open till")
	}
	if receipt.PointsEarned != 10 {
		t.Errorf("expected 10 points, got %d", receipt.PointsEarned)
	}

	paid, _ := f.orders.Get(ctx, o.ID)
	if paid.Status != orders.StatusPaid {
		t.Errorf("expected PAID, got %s", paid.Status)
	}
	if paid.Payment == nil || paid.Payment.Change != 30.00 {
		t.Errorf("payment record: %+v", paid.Payment)
	}
	if paid.PointsEarned != 10 {
		t.Errorf("expected points stamped on the order, got %d", paid.PointsEarned)
	}

	sess, _ := f.caja.Current(ctx)
	if sess.SalesByMethod["CASH"] != 20.00 {
		t.Errorf("expected CASH bucket 20.00, got %v", sess.SalesByMethod["CASH"])
	}
	if sess.ExpectedCash != 120.00 {
		t.Errorf("expected drawer 120.00, got %v", sess.ExpectedCash)
	}
	if sess.TotalMargin != 12.00 {
		t.Errorf("expected margin 12.00 on the till, got %v", sess.TotalMargin)
	}

	burger, _ := f.catalog.GetProduct(ctx, "prod-101")
	if burger.Stock != 18 {
		t.Errorf("expected stock 18 after selling 2, got %d", burger.Stock)
	}

	customer, err := f.loyalty.GetCustomer(ctx, "911222333")
	if err != nil {
		t.Fatalf("reading customer: %v", err)
	}
	if customer.Points != 10 {
		t.Errorf("expected 10 points accrued, got %d", customer.Points)
	}
}

func TestRegisterPaymentWithClosedTillStillSettles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.pickupOrder(t, "911222333")
	receipt, err := f.payments.Register(ctx, RegisterPaymentRequest{
		OrderID:  o.ID,
		Method:   "CASH",
		Tendered: 20.00,
	})
	if err != nil {
		t.Fatalf("registering payment: %v", err)
	}
	if receipt.TillRegistered {
		t.Error("no session open: the sale must not claim a till entry")
	}

	// The order still settles and the side effects still run.
	paid, _ := f.orders.Get(ctx, o.ID)
	if paid.Status != orders.StatusPaid {
		t.Errorf("expected PAID, got %s", paid.Status)
	}
	burger, _ := f.catalog.GetProduct(ctx, "prod-101")
	if burger.Stock != 18 {
		t.Errorf("expected stock 18, got %d", burger.Stock)
	}
	if receipt.PointsEarned != 10 {
		t.Errorf("expected 10 points, got %d", receipt.PointsEarned)
	}
}

func TestRegisterPaymentTwiceRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.pickupOrder(t, "")
	if _, err := f.payments.Register(ctx, RegisterPaymentRequest{OrderID: o.ID, Method: "CASH", Tendered: 20}); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	_, err := f.payments.Register(ctx, RegisterPaymentRequest{OrderID: o.ID, Method: "CASH", Tendered: 20})
	if !errors.Is(err, orders.ErrAlreadyPaid) {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestRegisterPaymentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.payments.Register(ctx, RegisterPaymentRequest{Method: "CASH"}); err == nil {
		t.Error("expected error for missing order_id")
	}
	if _, err := f.payments.Register(ctx, RegisterPaymentRequest{OrderID: "PED-X", Method: "BARTER"}); err == nil {
		t.Error("expected error for unknown method")
	}
	if _, err := f.payments.Register(ctx, RegisterPaymentRequest{OrderID: "PED-X", Method: "CASH"}); !errors.Is(err, orders.ErrOrderNotFound) {
		t.Error("expected ErrOrderNotFound for unknown order")
	}
}

func TestRewardLinesDecrementStockButNotRevenue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.orders.Create(ctx, orders.CreateOrderRequest{
		Kind:          "DINE_IN",
		PaymentMethod: "CASH",
		Customer:      orders.CustomerInfo{Name: "Rosa", Table: 6},
		Items: []orders.CartItemRequest{
			{ProductID: "prod-101", Quantity: 1},
			{ProductID: "prod-601", Quantity: 1, IsReward: true},
		},
	})
	if err != nil {
		t.Fatalf("placing order: %v", err)
	}
	if o.Total != 10.00 {
		t.Fatalf("reward line must be free, total %v", o.Total)
	}

	receipt, err := f.payments.Register(ctx, RegisterPaymentRequest{OrderID: o.ID, Method: "CASH", Tendered: 10})
	if err != nil {
		t.Fatalf("registering payment: %v", err)
	}
	// Margin carries the cost of the given-away soda: 10 − 4 − 1.5.
	if receipt.Margin != 4.50 {
		t.Errorf("expected margin 4.50, got %v", receipt.Margin)
	}

	soda, _ := f.catalog.GetProduct(ctx, "prod-601")
	if soda.Stock != 99 {
		t.Errorf("expected reward to consume stock, got %d", soda.Stock)
	}
}

package promotions

import (
	"context"
	"errors"
	"testing"

	"github.com/uchu51/restobar-backend/internal/modules/catalog"
	"github.com/uchu51/restobar-backend/internal/modules/orders"
	"github.com/uchu51/restobar-backend/internal/snapshot"
)

type fixture struct {
	promos Service
	orders orders.Service
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

	repo, err := NewMemoryRepository(ctx, snapshot.NewNoop())
	if err != nil {
		t.Fatalf("building promotion repository: %v", err)
	}
	return &fixture{promos: NewService(repo, ordersSvc, catalogSvc), orders: ordersSvc}
}

func TestSeedPromotionsLoaded(t *testing.T) {
	f := newFixture(t)

	all, err := f.promos.ListPromotions(context.Background(), false)
	if err != nil {
		t.Fatalf("listing promotions: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 seeded promotions, got %d", len(all))
	}
}

func TestCreatePromotionValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreatePromotionRequest
	}{
		{"missing name", CreatePromotionRequest{Kind: "TWO_FOR_ONE", Conditions: Conditions{ProductID: "prod-301"}}},
		{"unknown kind", CreatePromotionRequest{Name: "x", Kind: "THREE_FOR_TWO"}},
		{"two-for-one without product", CreatePromotionRequest{Name: "x", Kind: "TWO_FOR_ONE"}},
		{"combo without products", CreatePromotionRequest{Name: "x", Kind: "FIXED_COMBO", Conditions: Conditions{FixedPrice: 10}}},
		{"combo without price", CreatePromotionRequest{Name: "x", Kind: "FIXED_COMBO", Conditions: Conditions{Products: []ComboItem{{ProductID: "prod-101", Quantity: 1}}}}},
	}
	for _, tc := range cases {
		if _, err := f.promos.CreatePromotion(ctx, tc.req); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestApplyToOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.orders.Create(ctx, orders.CreateOrderRequest{
		Kind:          "DINE_IN",
		PaymentMethod: "CASH",
		Customer:      orders.CustomerInfo{Name: "Mesa", Table: 9},
		Items:         []orders.CartItemRequest{{ProductID: "prod-301", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("placing order: %v", err)
	}
	if o.Total != 36.00 {
		t.Fatalf("expected pre-promotion total 36.00, got %v", o.Total)
	}

	applicable, err := f.promos.GetApplicable(ctx, o.ID)
	if err != nil {
		t.Fatalf("checking applicability: %v", err)
	}
	if len(applicable) != 1 || applicable[0].ID != "promo-2" {
		t.Fatalf("expected the seeded 2x1 to apply, got %+v", applicable)
	}

	updated, err := f.promos.ApplyToOrder(ctx, ApplyRequest{OrderID: o.ID, PromotionID: "promo-2"})
	if err != nil {
		t.Fatalf("applying: %v", err)
	}
	if updated.Total != 18.00 {
		t.Errorf("expected total 18.00 after the 2x1, got %v", updated.Total)
	}

	// Already claimed: the promotion no longer applies.
	applicable, _ = f.promos.GetApplicable(ctx, o.ID)
	if len(applicable) != 0 {
		t.Errorf("expected no applicable promotions after applying, got %+v", applicable)
	}
}

func TestApplyToOrderNotApplicable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.orders.Create(ctx, orders.CreateOrderRequest{
		Kind:          "DINE_IN",
		PaymentMethod: "CASH",
		Customer:      orders.CustomerInfo{Name: "Mesa", Table: 9},
		Items:         []orders.CartItemRequest{{ProductID: "prod-301", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("placing order: %v", err)
	}

	if _, err := f.promos.ApplyToOrder(ctx, ApplyRequest{OrderID: o.ID, PromotionID: "promo-2"}); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("expected ErrNotApplicable, got %v", err)
	}
}

func TestSetActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.promos.SetActive(ctx, "promo-2", false)
	if err != nil {
		t.Fatalf("deactivating: %v", err)
	}
	if p.Active {
		t.Error("expected promotion inactive")
	}

	active, _ := f.promos.ListPromotions(ctx, true)
	for _, ap := range active {
		if ap.ID == "promo-2" {
			t.Error("inactive promotion listed as active")
		}
	}
}

func TestStorefrontItemsForSeededCombo(t *testing.T) {
	f := newFixture(t)

	items, err := f.promos.StorefrontItems(context.Background(), "promo-1")
	if err != nil {
		t.Fatalf("building storefront items: %v", err)
	}
	if got := orders.CalculateTotal(items); got != 16.00 {
		t.Errorf("expected combo total 16.00, got %v", got)
	}
}

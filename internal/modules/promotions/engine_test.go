package promotions

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/uchu51/restobar-backend/internal/modules/catalog"
	"github.com/uchu51/restobar-backend/internal/modules/orders"
)

var testProducts = map[string]*catalog.Product{
	"prod-101": {ID: "prod-101", Name: "Clásica Norteña", Price: 10.00},
	"prod-301": {ID: "prod-301", Name: "Alitas BBQ x4", Price: 18.00},
	"prod-502": {ID: "prod-502", Name: "Papas Fritas Personales", Price: 6.00},
	"prod-601": {ID: "prod-601", Name: "Gaseosa Personal", Price: 4.00},
}

func lookup(id string) (*catalog.Product, error) {
	p, ok := testProducts[id]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	return p, nil
}

func twoForOneWings() *Promotion {
	return &Promotion{
		ID:         "promo-2",
		Name:       "2x1 Alitas",
		Kind:       KindTwoForOne,
		Active:     true,
		Conditions: Conditions{ProductID: "prod-301"},
	}
}

func classicCombo() *Promotion {
	return &Promotion{
		ID:     "promo-1",
		Name:   "Combo Clásico",
		Kind:   KindFixedCombo,
		Active: true,
		Conditions: Conditions{
			FixedPrice: 16.00,
			Products: []ComboItem{
				{ProductID: "prod-101", Quantity: 1},
				{ProductID: "prod-502", Quantity: 1},
				{ProductID: "prod-601", Quantity: 1},
			},
		},
	}
}

func TestIsApplicableTwoForOne(t *testing.T) {
	promo := twoForOneWings()

	one := []orders.OrderItem{{ProductID: "prod-301", Price: 18, Quantity: 1}}
	if IsApplicable(one, promo) {
		t.Error("one unit must not qualify for a 2x1")
	}

	two := []orders.OrderItem{{ProductID: "prod-301", Price: 18, Quantity: 2}}
	if !IsApplicable(two, promo) {
		t.Error("two units on one line should qualify")
	}

	split := []orders.OrderItem{
		{ProductID: "prod-301", Price: 18, Quantity: 1},
		{ProductID: "prod-301", Price: 18, Quantity: 1},
	}
	if !IsApplicable(split, promo) {
		t.Error("two units across two lines should qualify")
	}
}

func TestIsApplicableIgnoresClaimedAndRewardUnits(t *testing.T) {
	promo := twoForOneWings()

	items := []orders.OrderItem{
		{ProductID: "prod-301", Price: 18, Quantity: 1, PromotionID: "promo-x"},
		{ProductID: "prod-301", Price: 0, Quantity: 1, IsReward: true},
		{ProductID: "prod-301", Price: 18, Quantity: 1},
	}
	if IsApplicable(items, promo) {
		t.Error("claimed and reward units must not count toward the threshold")
	}
}

func TestIsApplicableFixedCombo(t *testing.T) {
	promo := classicCombo()

	full := []orders.OrderItem{
		{ProductID: "prod-101", Price: 10, Quantity: 1},
		{ProductID: "prod-502", Price: 6, Quantity: 1},
		{ProductID: "prod-601", Price: 4, Quantity: 1},
	}
	if !IsApplicable(full, promo) {
		t.Error("complete combo contents should qualify")
	}

	missing := full[:2]
	if IsApplicable(missing, promo) {
		t.Error("incomplete combo contents must not qualify")
	}
}

func TestInactivePromotionNeverApplies(t *testing.T) {
	promo := twoForOneWings()
	promo.Active = false

	items := []orders.OrderItem{{ProductID: "prod-301", Price: 18, Quantity: 2}}
	if IsApplicable(items, promo) {
		t.Error("inactive promotion must not be applicable")
	}
	if _, err := Apply(items, promo, lookup); !errors.Is(err, ErrInactive) {
		t.Errorf("expected ErrInactive, got %v", err)
	}
}

func TestApplyTwoForOneSplitsMultiUnitLine(t *testing.T) {
	promo := twoForOneWings()
	items := []orders.OrderItem{
		{ProductID: "prod-301", Name: "Alitas BBQ x4", Price: 18, Quantity: 2, SentToKitchen: true},
	}

	out, err := Apply(items, promo, lookup)
	if err != nil {
		t.Fatalf("applying: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected the line split into 2, got %d lines", len(out))
	}

	var free, paid *orders.OrderItem
	for i := range out {
		if out[i].Price == 0 {
			free = &out[i]
		} else {
			paid = &out[i]
		}
	}
	if paid == nil || free == nil {
		t.Fatalf("expected one paid and one free unit, got %+v", out)
	}
	if paid.Price != 18 || paid.PromotionID != promo.ID {
		t.Errorf("paid unit: %+v", *paid)
	}
	if free.OriginalPrice != 18 || free.PromotionID != promo.ID {
		t.Errorf("free unit: %+v", *free)
	}
	if paid.SentToKitchen || free.SentToKitchen {
		t.Error("repriced lines must drop the sent-to-kitchen flag")
	}

	// Half price for the pair, not per line.
	if got := orders.CalculateTotal(out); got != 18.00 {
		t.Errorf("expected total 18.00, got %v", got)
	}

	// The input slice is untouched.
	if items[0].Quantity != 2 || items[0].PromotionID != "" {
		t.Errorf("input mutated: %+v", items[0])
	}
}

func TestApplyTwoForOneNotApplicable(t *testing.T) {
	promo := twoForOneWings()
	items := []orders.OrderItem{{ProductID: "prod-301", Price: 18, Quantity: 1}}

	if _, err := Apply(items, promo, lookup); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("expected ErrNotApplicable, got %v", err)
	}
}

func TestApplyFixedComboRedistributesPrice(t *testing.T) {
	promo := classicCombo()
	items := []orders.OrderItem{
		{ProductID: "prod-101", Name: "Clásica Norteña", Price: 10, Quantity: 1, SentToKitchen: true},
		{ProductID: "prod-502", Name: "Papas Fritas Personales", Price: 6, Quantity: 1},
		{ProductID: "prod-601", Name: "Gaseosa Personal", Price: 4, Quantity: 1},
	}

	out, err := Apply(items, promo, lookup)
	if err != nil {
		t.Fatalf("applying: %v", err)
	}

	// 16 / 20 = 0.8 across every constituent.
	wantPrices := map[string]float64{"prod-101": 8.00, "prod-502": 4.80, "prod-601": 3.20}
	for _, item := range out {
		want := wantPrices[item.ProductID]
		if math.Abs(item.Price-want) > 0.001 {
			t.Errorf("%s: expected price %v, got %v", item.ProductID, want, item.Price)
		}
		if item.PromotionID != promo.ID {
			t.Errorf("%s: expected promotion tag", item.ProductID)
		}
		if item.SentToKitchen {
			t.Errorf("%s: sent flag should be cleared", item.ProductID)
		}
	}
	if got := orders.CalculateTotal(out); got != 16.00 {
		t.Errorf("expected bundle total 16.00, got %v", got)
	}
}

func TestCartItemsTwoForOne(t *testing.T) {
	items, err := CartItems(twoForOneWings(), lookup)
	if err != nil {
		t.Fatalf("building cart items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].Price != 18 || items[1].Price != 0 {
		t.Errorf("expected one full-price and one free line, got %+v", items)
	}
	if orders.CalculateTotal(items) != 18.00 {
		t.Errorf("expected total 18.00")
	}
}

func TestCartItemsFixedCombo(t *testing.T) {
	items, err := CartItems(classicCombo(), lookup)
	if err != nil {
		t.Fatalf("building cart items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
	if got := orders.CalculateTotal(items); got != 16.00 {
		t.Errorf("expected total 16.00, got %v", got)
	}
	for _, item := range items {
		if item.OriginalPrice <= item.Price {
			t.Errorf("%s: expected a discount, got %v -> %v", item.ProductID, item.OriginalPrice, item.Price)
		}
	}
}

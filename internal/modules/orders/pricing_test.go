package orders

import "testing"

func TestCalculateTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "prod-101", Price: 10.00, Quantity: 2},
		{ProductID: "prod-601", Price: 4.00, Quantity: 1},
	}
	if got := CalculateTotal(items); got != 24.00 {
		t.Errorf("expected 24.00, got %v", got)
	}
}

func TestCalculateTotalWithSauces(t *testing.T) {
	items := []OrderItem{
		{
			ProductID: "prod-401",
			Price:     10.00,
			Quantity:  2,
			Sauces:    []Sauce{{Name: "Tártara", Price: 1.00}, {Name: "Ají", Price: 0.50}},
		},
	}
	// (10 + 1 + 0.5) × 2
	if got := CalculateTotal(items); got != 23.00 {
		t.Errorf("expected 23.00, got %v", got)
	}
}

func TestCalculateTotalIgnoresZeroPriceLines(t *testing.T) {
	items := []OrderItem{
		{ProductID: "prod-301", Price: 18.00, Quantity: 1, PromotionID: "promo-2"},
		{ProductID: "prod-301", Price: 0, OriginalPrice: 18.00, Quantity: 1, PromotionID: "promo-2"},
		{ProductID: "prod-601", Price: 0, Quantity: 1, IsReward: true},
	}
	if got := CalculateTotal(items); got != 18.00 {
		t.Errorf("expected 18.00, got %v", got)
	}
}

func TestCalculateTotalIsIdempotent(t *testing.T) {
	items := []OrderItem{
		{ProductID: "prod-102", Price: 12.00, Quantity: 3},
		{ProductID: "prod-502", Price: 6.00, Quantity: 1},
	}
	first := CalculateTotal(items)
	second := CalculateTotal(items)
	if first != second {
		t.Errorf("recomputing changed the total: %v then %v", first, second)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{10.004, 10.00},
		{16.666666, 16.67},
		{2.718, 2.72},
		{-1.239, -1.24},
		{0, 0},
	}
	for _, tc := range cases {
		if got := round2(tc.in); got != tc.want {
			t.Errorf("round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

package catalog

import (
	"context"
	"testing"

	"github.com/uchu51/restobar-backend/internal/snapshot"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	repo, err := NewMemoryRepository(context.Background(), snapshot.NewNoop())
	if err != nil {
		t.Fatalf("building repository: %v", err)
	}
	return NewService(repo)
}

func TestSeedCatalogLoaded(t *testing.T) {
	svc := newTestService(t)

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("listing products: %v", err)
	}
	if len(products) != 10 {
		t.Fatalf("expected 10 seeded products, got %d", len(products))
	}

	p, err := svc.GetProduct(context.Background(), "prod-101")
	if err != nil {
		t.Fatalf("getting seeded product: %v", err)
	}
	if p.Name != "Clásica Norteña" || p.Price != 10.00 || p.Stock != 20 {
		t.Errorf("unexpected seed product: %+v", p)
	}
}

func TestCreateProduct(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:     "Anticuchos",
		Category: "Parrilla",
		Price:    15.00,
		Cost:     6.00,
		Stock:    12,
	})
	if err != nil {
		t.Fatalf("creating product: %v", err)
	}
	if p.ID == "" {
		t.Error("expected generated ID")
	}

	got, err := svc.GetProduct(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("reading back product: %v", err)
	}
	if got.Name != "Anticuchos" || got.Price != 15.00 {
		t.Errorf("read back %+v", got)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name string
		req  CreateProductRequest
	}{
		{"missing name", CreateProductRequest{Category: "Bebidas", Price: 4}},
		{"missing category", CreateProductRequest{Name: "Chicha", Price: 4}},
		{"negative price", CreateProductRequest{Name: "Chicha", Category: "Bebidas", Price: -1}},
		{"negative stock", CreateProductRequest{Name: "Chicha", Category: "Bebidas", Price: 4, Stock: -1}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateProduct(context.Background(), tc.req); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestUpdateProductPartial(t *testing.T) {
	svc := newTestService(t)

	price := 11.50
	p, err := svc.UpdateProduct(context.Background(), "prod-101", UpdateProductRequest{Price: &price})
	if err != nil {
		t.Fatalf("updating product: %v", err)
	}
	if p.Price != 11.50 {
		t.Errorf("expected price 11.50, got %v", p.Price)
	}
	if p.Name != "Clásica Norteña" {
		t.Errorf("omitted field should keep its value, got name %q", p.Name)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc := newTestService(t)

	if err := svc.DeleteProduct(context.Background(), "prod-701"); err != nil {
		t.Fatalf("deleting product: %v", err)
	}
	if _, err := svc.GetProduct(context.Background(), "prod-701"); err == nil {
		t.Error("expected deleted product to be gone")
	}
	if err := svc.DeleteProduct(context.Background(), "prod-701"); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestDecrementStockClampsAtZero(t *testing.T) {
	svc := newTestService(t)

	// prod-101 has 20 on hand; selling 25 floors at zero instead of failing.
	err := svc.DecrementStock(context.Background(), map[string]int{
		"prod-101":     25,
		"prod-601":     3,
		"prod-unknown": 2, // unknown IDs are skipped
	})
	if err != nil {
		t.Fatalf("decrementing stock: %v", err)
	}

	p, _ := svc.GetProduct(context.Background(), "prod-101")
	if p.Stock != 0 {
		t.Errorf("expected stock clamped to 0, got %d", p.Stock)
	}
	soda, _ := svc.GetProduct(context.Background(), "prod-601")
	if soda.Stock != 97 {
		t.Errorf("expected stock 97, got %d", soda.Stock)
	}
}

package catalog

import "context"

// Repository defines data access for the product catalog.
type Repository interface {
	// List returns the full catalog.
	List(ctx context.Context) ([]*Product, error)

	// Get retrieves one product by ID.
	Get(ctx context.Context, id string) (*Product, error)

	// Create persists a new product.
	Create(ctx context.Context, p *Product) error

	// Update rewrites an existing product.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product from the catalog.
	Delete(ctx context.Context, id string) error

	// DecrementStock reduces each product's stock by the given quantity,
	// clamped at zero. Unknown product IDs are skipped.
	DecrementStock(ctx context.Context, quantities map[string]int) error
}

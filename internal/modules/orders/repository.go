package orders

import "context"

// Repository defines data access for the order collection.
type Repository interface {
	// Create persists a new order.
	Create(ctx context.Context, o *Order) error

	// Get retrieves an order by ID.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns every order, newest first.
	List(ctx context.Context) ([]*Order, error)

	// Update runs mutate against the stored order under the collection
	// lock, so there is at most one in-flight mutation per order, and
	// persists the result. If mutate returns an error nothing is changed.
	Update(ctx context.Context, id string, mutate func(*Order) error) (*Order, error)
}

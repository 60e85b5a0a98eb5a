package promotions

import "context"

// Repository defines data access for the promotion catalog.
type Repository interface {
	List(ctx context.Context) ([]*Promotion, error)
	Get(ctx context.Context, id string) (*Promotion, error)
	Create(ctx context.Context, p *Promotion) error
	Update(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, id string) error
}

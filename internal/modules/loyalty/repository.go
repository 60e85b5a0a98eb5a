package loyalty

import "context"

// Repository stores loyalty programs and customer accounts.
type Repository interface {
	ListPrograms(ctx context.Context) ([]*Program, error)
	GetProgram(ctx context.Context, id string) (*Program, error)
	CreateProgram(ctx context.Context, p *Program) error
	UpdateProgram(ctx context.Context, p *Program) error
	DeleteProgram(ctx context.Context, id string) error

	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, phone string) (*Customer, error)
	SaveCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, phone string, mutate func(*Customer) error) (*Customer, error)
}

package loyalty

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/uchu51/restobar-backend/internal/modules/orders"
)

// Service manages loyalty programs and customer point balances.
type Service interface {
	CreateProgram(ctx context.Context, req CreateProgramRequest) (*Program, error)
	GetProgram(ctx context.Context, id string) (*Program, error)
	ListPrograms(ctx context.Context) ([]*Program, error)
	UpdateProgram(ctx context.Context, id string, req CreateProgramRequest) (*Program, error)
	DeleteProgram(ctx context.Context, id string) error
	ActiveProgram(ctx context.Context) (*Program, error)

	RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, phone string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)

	// PointsFor converts an order total into points under the active
	// program. Zero means no points apply.
	PointsFor(ctx context.Context, total float64) (int, error)

	// Accrue credits the points earned by a paid order to the customer on
	// the order, creating the account when the phone is new. Orders with no
	// loyalty-eligible phone, or when no program is active, accrue nothing.
	Accrue(ctx context.Context, order *orders.Order) (int, error)

	// Redeem exchanges points for a reward, appending a zero-price line to
	// the target order. A rejected redemption leaves both the balance and
	// the order untouched.
	Redeem(ctx context.Context, req RedeemRequest) (*orders.Order, error)
}

type service struct {
	repo      Repository
	ordersSvc orders.Service
}

func NewService(repo Repository, ordersSvc orders.Service) Service {
	return &service{repo: repo, ordersSvc: ordersSvc}
}

func (s *service) CreateProgram(ctx context.Context, req CreateProgramRequest) (*Program, error) {
	p, err := buildProgram("prog-"+uuid.New().String()[:8], req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateProgram(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProgram(ctx context.Context, id string) (*Program, error) {
	return s.repo.GetProgram(ctx, id)
}

func (s *service) ListPrograms(ctx context.Context) ([]*Program, error) {
	return s.repo.ListPrograms(ctx)
}

func (s *service) UpdateProgram(ctx context.Context, id string, req CreateProgramRequest) (*Program, error) {
	if _, err := s.repo.GetProgram(ctx, id); err != nil {
		return nil, err
	}
	p, err := buildProgram(id, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProgram(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProgram(ctx context.Context, id string) error {
	return s.repo.DeleteProgram(ctx, id)
}

// ActiveProgram returns the first active program, or ErrProgramNotFound
// when none is active.
func (s *service) ActiveProgram(ctx context.Context) (*Program, error) {
	programs, err := s.repo.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range programs {
		if p.Active {
			return p, nil
		}
	}
	return nil, ErrProgramNotFound
}

func (s *service) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*Customer, error) {
	if !orders.ValidPhone(req.Phone) {
		return nil, fmt.Errorf("phone must be 9 digits")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if _, err := s.repo.GetCustomer(ctx, req.Phone); err == nil {
		return nil, ErrCustomerExists
	}
	c := &Customer{Phone: req.Phone, Name: req.Name}
	if err := s.repo.SaveCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.GetCustomer(ctx, phone)
}

func (s *service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *service) PointsFor(ctx context.Context, total float64) (int, error) {
	program, err := s.ActiveProgram(ctx)
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return pointsUnder(program, total), nil
}

func pointsUnder(program *Program, total float64) int {
	cfg := program.Config
	switch cfg.Method {
	case ByPurchase:
		return cfg.PointsPerPurchase
	case ByAmount:
		if cfg.AmountForPoints <= 0 {
			return 0
		}
		return int(math.Floor(total/cfg.AmountForPoints)) * cfg.PointsPerAmount
	default:
		return 0
	}
}

func (s *service) Accrue(ctx context.Context, order *orders.Order) (int, error) {
	if order == nil || !orders.ValidPhone(order.Customer.Phone) {
		return 0, nil
	}
	program, err := s.ActiveProgram(ctx)
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			return 0, nil
		}
		return 0, err
	}
	points := pointsUnder(program, order.Total)

	// The account and its purchase history still update when the order is
	// too small to earn points.
	phone := order.Customer.Phone
	_, err = s.repo.UpdateCustomer(ctx, phone, func(c *Customer) error {
		c.Points += points
		if c.Name == "" {
			c.Name = order.Customer.Name
		}
		c.Orders = append(c.Orders, *order)
		return nil
	})
	if errors.Is(err, ErrCustomerNotFound) {
		c := &Customer{
			Phone:  phone,
			Name:   order.Customer.Name,
			Points: points,
			Orders: []orders.Order{*order},
		}
		err = s.repo.SaveCustomer(ctx, c)
	}
	if err != nil {
		return 0, err
	}
	return points, nil
}

func (s *service) Redeem(ctx context.Context, req RedeemRequest) (*orders.Order, error) {
	customer, err := s.repo.GetCustomer(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	program, err := s.ActiveProgram(ctx)
	if err != nil {
		return nil, err
	}
	var reward *Reward
	for i := range program.Rewards {
		if program.Rewards[i].ID == req.RewardID {
			reward = &program.Rewards[i]
			break
		}
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	if customer.Points < reward.PointsRequired {
		return nil, ErrInsufficientPoints
	}

	order, err := s.ordersSvc.Get(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// Deduct before touching the order so a rejected balance never leaves
	// a free line behind.
	if _, err := s.repo.UpdateCustomer(ctx, req.Phone, func(c *Customer) error {
		if c.Points < reward.PointsRequired {
			return ErrInsufficientPoints
		}
		c.Points -= reward.PointsRequired
		return nil
	}); err != nil {
		return nil, err
	}

	productID := reward.ProductID
	if productID == "" {
		productID = "reward-" + reward.ID
	}
	line := orders.OrderItem{
		ProductID: productID,
		Name:      reward.Name + " [CANJE]",
		Quantity:  1,
		Price:     0,
		IsReward:  true,
	}
	updated, err := s.ordersSvc.ReplaceItems(ctx, order.ID, append(order.Items, line))
	if err != nil {
		// Refund the deduction if the line never landed on the order.
		if _, rerr := s.repo.UpdateCustomer(ctx, req.Phone, func(c *Customer) error {
			c.Points += reward.PointsRequired
			return nil
		}); rerr != nil {
			return nil, fmt.Errorf("refunding points after failed redemption: %w", rerr)
		}
		return nil, err
	}
	return updated, nil
}

func buildProgram(id string, req CreateProgramRequest) (*Program, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	switch req.Config.Method {
	case ByAmount:
		if req.Config.AmountForPoints <= 0 || req.Config.PointsPerAmount <= 0 {
			return nil, fmt.Errorf("by_amount programs need amount_for_points and points_per_amount > 0")
		}
	case ByPurchase:
		if req.Config.PointsPerPurchase <= 0 {
			return nil, fmt.Errorf("by_purchase programs need points_per_purchase > 0")
		}
	default:
		return nil, fmt.Errorf("invalid accrual method %q", req.Config.Method)
	}
	rewards := make([]Reward, 0, len(req.Rewards))
	for _, rw := range req.Rewards {
		if rw.Name == "" || rw.PointsRequired <= 0 {
			return nil, fmt.Errorf("rewards need a name and points_required > 0")
		}
		if rw.ID == "" {
			rw.ID = "rec-" + uuid.New().String()[:8]
		}
		rewards = append(rewards, rw)
	}
	return &Program{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		Config:      req.Config,
		Rewards:     rewards,
	}, nil
}

package loyalty

import "github.com/uchu51/restobar-backend/internal/modules/orders"

// AccrualMethod selects how an order total converts into points.
type AccrualMethod string

const (
	ByAmount   AccrualMethod = "by_amount"
	ByPurchase AccrualMethod = "by_purchase"
)

// ProgramConfig holds the accrual parameters of a program.
type ProgramConfig struct {
	Method            AccrualMethod `json:"method"`
	PointsPerAmount   int           `json:"points_per_amount"`
	AmountForPoints   float64       `json:"amount_for_points"`
	PointsPerPurchase int           `json:"points_per_purchase"`
}

// Reward is a prize a customer can redeem with points. ProductID is empty
// for rewards that are not tied to a catalog product.
type Reward struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PointsRequired int    `json:"points_required"`
	ProductID      string `json:"product_id,omitempty"`
}

// Program is a loyalty program definition.
type Program struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Active      bool          `json:"active"`
	Config      ProgramConfig `json:"config"`
	Rewards     []Reward      `json:"rewards"`
}

// Customer is a loyalty account keyed by phone number. Orders keeps the
// paid orders that earned points, most recent last.
type Customer struct {
	Phone  string         `json:"phone"`
	Name   string         `json:"name"`
	Points int            `json:"points"`
	Orders []orders.Order `json:"orders"`
}

type CreateProgramRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Active      bool          `json:"active"`
	Config      ProgramConfig `json:"config"`
	Rewards     []Reward      `json:"rewards"`
}

type RegisterCustomerRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type RedeemRequest struct {
	Phone    string `json:"phone"`
	RewardID string `json:"reward_id"`
	OrderID  string `json:"order_id"`
}

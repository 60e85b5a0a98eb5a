package orders

import "time"

// OrderKind indicates how the order will be fulfilled.
type OrderKind string

const (
	KindDelivery OrderKind = "DELIVERY"
	KindDineIn   OrderKind = "DINE_IN"
	KindPickup   OrderKind = "PICKUP"
)

// PaymentMethod represents how an order is (or will be) paid.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodCard   PaymentMethod = "CARD"
	MethodYape   PaymentMethod = "YAPE"
	MethodPlin   PaymentMethod = "PLIN"
	MethodOnline PaymentMethod = "ONLINE"
)

// ActorRole identifies who performed a status change.
type ActorRole string

const (
	RoleAdmin        ActorRole = "ADMIN"
	RoleCook         ActorRole = "COOK"
	RoleDriver       ActorRole = "DRIVER"
	RoleReceptionist ActorRole = "RECEPTIONIST"
	RoleCustomer     ActorRole = "CUSTOMER"
)

// PrepArea is the kitchen routing tag, derived from the order kind.
type PrepArea string

const (
	AreaDelivery PrepArea = "DELIVERY"
	AreaPickup   PrepArea = "PICKUP"
	AreaDining   PrepArea = "DINING"
)

// Shift is the coarse time-of-day partition orders are tagged with.
type Shift string

const (
	ShiftMorning   Shift = "MORNING"
	ShiftAfternoon Shift = "AFTERNOON"
	ShiftEvening   Shift = "EVENING"
)

// Sauce is a priced add-on selected for a line item.
type Sauce struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItem is one product, promotion line, or redeemed reward within an
// order. Price is the effective unit price after any promotion or reward;
// OriginalPrice carries the pre-promotion price when they differ.
type OrderItem struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Sauces        []Sauce `json:"sauces,omitempty"`
	Specification string  `json:"specification,omitempty"`
	IsReward      bool    `json:"is_reward,omitempty"`
	SentToKitchen bool    `json:"sent_to_kitchen,omitempty"`
	PromotionID   string  `json:"promotion_id,omitempty"`
}

// HistoryEntry is one row in an order's append-only status trail.
type HistoryEntry struct {
	Status OrderStatus `json:"status"`
	At     time.Time   `json:"at"`
	Role   ActorRole   `json:"role"`
}

// PaymentRecord is attached to an order when, and only when, it is PAID.
type PaymentRecord struct {
	Method   PaymentMethod `json:"method"`
	Total    float64       `json:"total"`
	Tendered float64       `json:"tendered,omitempty"`
	Change   float64       `json:"change"`
	PaidAt   time.Time     `json:"paid_at"`
}

// CustomerInfo is the contact block captured on an order.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Table   int    `json:"table,omitempty"`
}

// Order is the central entity: a customer request moving through the kitchen
// toward payment. Total is always derived from Items, never edited directly.
type Order struct {
	ID               string         `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	Kind             OrderKind      `json:"kind"`
	Status           OrderStatus    `json:"status"`
	Shift            Shift          `json:"shift"`
	Customer         CustomerInfo   `json:"customer"`
	Items            []OrderItem    `json:"items"`
	Total            float64        `json:"total"`
	PaymentMethod    PaymentMethod  `json:"payment_method"`
	CashTendered     float64        `json:"cash_tendered,omitempty"`
	ExactCash        bool           `json:"exact_cash,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	AssignedCook     string         `json:"assigned_cook,omitempty"`
	AssignedDriver   string         `json:"assigned_driver,omitempty"`
	PrepArea         PrepArea       `json:"prep_area"`
	PointsEarned     int            `json:"points_earned,omitempty"`
	History          []HistoryEntry `json:"history"`
	Payment          *PaymentRecord `json:"payment,omitempty"`
}

// TableStatus reports whether an open dine-in order occupies a table.
type TableStatus struct {
	Table    int         `json:"table"`
	Occupied bool        `json:"occupied"`
	OrderID  string      `json:"order_id,omitempty"`
	Status   OrderStatus `json:"status,omitempty"`
}

// CartItemRequest describes one requested line at order creation or item edit.
// Name and price are snapshotted from the catalog server-side; Price in the
// request is honored only for promotion lines and validated against the
// catalog price.
type CartItemRequest struct {
	ProductID     string  `json:"product_id"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price,omitempty"`
	Sauces        []Sauce `json:"sauces,omitempty"`
	Specification string  `json:"specification,omitempty"`
	PromotionID   string  `json:"promotion_id,omitempty"`
	IsReward      bool    `json:"is_reward,omitempty"`
	RewardName    string  `json:"reward_name,omitempty"`
}

// CreateOrderRequest is the payload for placing an order from the storefront
// or the dine-in POS.
type CreateOrderRequest struct {
	Kind             string            `json:"kind"`
	PaymentMethod    string            `json:"payment_method"`
	Customer         CustomerInfo      `json:"customer"`
	Items            []CartItemRequest `json:"items"`
	Shift            string            `json:"shift,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	CashTendered     float64           `json:"cash_tendered,omitempty"`
	ExactCash        bool              `json:"exact_cash,omitempty"`
	EstimatedMinutes int               `json:"estimated_minutes,omitempty"`
	Role             string            `json:"role,omitempty"`
}

// TransitionRequest is the payload for advancing an order's status.
type TransitionRequest struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

// UpdateItemsRequest replaces an order's line items before or between
// kitchen sends.
type UpdateItemsRequest struct {
	Items []CartItemRequest `json:"items"`
	Role  string            `json:"role,omitempty"`
}

package payments

// RegisterPaymentRequest settles an order. Tendered is only meaningful for
// cash payments, where it must cover the order total.
type RegisterPaymentRequest struct {
	OrderID  string  `json:"order_id"`
	Method   string  `json:"method"`
	Tendered float64 `json:"cash_tendered,omitempty"`
	Role     string  `json:"role,omitempty"`
}

// Receipt summarizes the outcome of a settled payment.
type Receipt struct {
	OrderID        string  `json:"order_id"`
	Method         string  `json:"method"`
	Total          float64 `json:"total"`
	Change         float64 `json:"change"`
	Margin         float64 `json:"margin"`
	PointsEarned   int     `json:"points_earned"`
	TillRegistered bool    `json:"till_registered"`
}

package caja

import "time"

// SessionState is the till lifecycle state.
type SessionState string

const (
	StateOpen   SessionState = "OPEN"
	StateClosed SessionState = "CLOSED"
)

// MovementKind is the direction of a manual cash movement.
type MovementKind string

const (
	MovementIn  MovementKind = "IN"
	MovementOut MovementKind = "OUT"
)

// Movement is one manual cash entry in the session's append-only ledger.
type Movement struct {
	Kind        MovementKind `json:"kind"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	At          time.Time    `json:"at"`
}

// Session is one cash-register shift. ExpectedCash is recomputed on every
// sale and movement: openingFloat + cash sales + Σ in − Σ out. CountedCash
// and Variance are set once, at close.
type Session struct {
	State         SessionState       `json:"state"`
	OpenedAt      time.Time          `json:"opened_at"`
	ClosedAt      *time.Time         `json:"closed_at,omitempty"`
	OpeningFloat  float64            `json:"opening_float"`
	SalesByMethod map[string]float64 `json:"sales_by_method"`
	TotalSales    float64            `json:"total_sales"`
	TotalMargin   float64            `json:"total_margin"`
	ExpectedCash  float64            `json:"expected_cash"`
	CountedCash   *float64           `json:"counted_cash,omitempty"`
	Variance      *float64           `json:"variance,omitempty"`
	Movements     []Movement         `json:"movements"`
}

// OpenRequest is the payload for opening the till.
type OpenRequest struct {
	OpeningFloat float64 `json:"opening_float"`
}

// CloseRequest is the payload for the blind cash count at close.
type CloseRequest struct {
	CountedCash float64 `json:"counted_cash"`
}

// MovementRequest is the payload for a manual cash movement.
type MovementRequest struct {
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

package orders

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrTerminalStatus     = errors.New("order is in a terminal status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPaidViaTransition  = errors.New("PAID cannot be set by a status transition")
	ErrAlreadyPaid        = errors.New("order is already paid")
	ErrDriverRequired     = errors.New("a driver must be assigned before dispatch")
	ErrPickupNeedsPayment = errors.New("cash/card pickup orders must be paid at the caja before pickup")
)

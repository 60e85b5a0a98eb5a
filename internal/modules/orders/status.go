package orders

import "fmt"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// StatusPendingPaymentConfirmation holds wallet-paid orders until staff
	// verifies the transfer arrived.
	StatusPendingPaymentConfirmation OrderStatus = "PENDING_PAYMENT_CONFIRMATION"
	// StatusPendingConfirmation holds cash/card pickup orders until staff
	// accepts them, so no-shows don't waste kitchen output.
	StatusPendingConfirmation OrderStatus = "PENDING_CONFIRMATION"
	StatusNew                 OrderStatus = "NEW"
	StatusConfirmed           OrderStatus = "CONFIRMED"
	StatusPreparing           OrderStatus = "PREPARING"
	StatusAssembling          OrderStatus = "ASSEMBLING"
	StatusReadyForAssembly    OrderStatus = "READY_FOR_ASSEMBLY"
	StatusReady               OrderStatus = "READY"
	StatusEnRoute             OrderStatus = "EN_ROUTE"
	StatusDelivered           OrderStatus = "DELIVERED"
	StatusPickedUp            OrderStatus = "PICKED_UP"
	StatusPaid                OrderStatus = "PAID"
	StatusAccountRequested    OrderStatus = "ACCOUNT_REQUESTED"
	StatusCancelled           OrderStatus = "CANCELLED"
)

// validTransitions defines the allowed status state machine. Kitchen staff
// move freely among the in-progress states; any active state can be
// cancelled. PAID never appears as a target here: it is reachable only
// through payment registration.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPendingPaymentConfirmation: {StatusPreparing, StatusCancelled},
	StatusPendingConfirmation:        {StatusPreparing, StatusCancelled},
	StatusNew:                        {StatusPreparing, StatusCancelled},
	StatusConfirmed:                  {StatusPreparing, StatusCancelled},
	StatusPreparing:                  {StatusAssembling, StatusReadyForAssembly, StatusReady, StatusCancelled},
	StatusAssembling:                 {StatusPreparing, StatusReadyForAssembly, StatusReady, StatusCancelled},
	StatusReadyForAssembly:           {StatusPreparing, StatusAssembling, StatusReady, StatusCancelled},
	StatusReady:                      {StatusEnRoute, StatusPickedUp, StatusDelivered, StatusAccountRequested, StatusCancelled},
	StatusEnRoute:                    {StatusDelivered, StatusCancelled},
	StatusDelivered:                  {StatusAccountRequested, StatusCancelled},
	StatusAccountRequested:           {StatusCancelled},
	StatusPickedUp:                   {},
	StatusPaid:                       {},
	StatusCancelled:                  {},
}

// terminal statuses are never left once reached.
func isTerminal(s OrderStatus) bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusPickedUp, StatusDelivered:
		return true
	}
	return false
}

// DELIVERED is terminal for delivery orders only; a dine-in order marked
// served still moves on to ACCOUNT_REQUESTED and payment.
func isTerminalFor(o *Order, s OrderStatus) bool {
	if s == StatusDelivered && o.Kind == KindDineIn {
		return false
	}
	return isTerminal(s)
}

// canTransition validates a requested status change against the transition
// table and the per-edge guards.
func canTransition(o *Order, to OrderStatus) error {
	if to == StatusPaid {
		return fmt.Errorf("%w: register a payment instead", ErrPaidViaTransition)
	}
	if isTerminalFor(o, o.Status) {
		return fmt.Errorf("%w: order %s is %s", ErrTerminalStatus, o.ID, o.Status)
	}
	allowed := false
	for _, next := range validTransitions[o.Status] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	switch to {
	case StatusEnRoute:
		if o.AssignedDriver == "" {
			return ErrDriverRequired
		}
	case StatusPickedUp:
		if o.PaymentMethod == MethodCash || o.PaymentMethod == MethodCard {
			return ErrPickupNeedsPayment
		}
	case StatusAccountRequested:
		if o.Kind != KindDineIn {
			return fmt.Errorf("%w: only dine-in orders request the bill", ErrInvalidTransition)
		}
	}
	return nil
}

// initialStatus computes the status an order starts in, per kind and
// payment method.
func initialStatus(kind OrderKind, method PaymentMethod) OrderStatus {
	if method == MethodYape || method == MethodPlin {
		return StatusPendingPaymentConfirmation
	}
	if kind == KindPickup && (method == MethodCash || method == MethodCard) {
		return StatusPendingConfirmation
	}
	return StatusPreparing
}

// prepAreaFor derives the kitchen routing tag from the order kind.
func prepAreaFor(kind OrderKind) PrepArea {
	switch kind {
	case KindDineIn:
		return AreaDining
	case KindPickup:
		return AreaPickup
	default:
		return AreaDelivery
	}
}

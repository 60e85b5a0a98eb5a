package orders

import (
	"fmt"
	"regexp"
	"strings"
)

// Phone numbers are nine digits, the national mobile format.
var phonePattern = regexp.MustCompile(`^\d{9}$`)

func parseKind(s string) (OrderKind, error) {
	switch k := OrderKind(strings.ToUpper(s)); k {
	case KindDelivery, KindDineIn, KindPickup:
		return k, nil
	default:
		return "", fmt.Errorf("invalid kind: %q (allowed: DELIVERY, DINE_IN, PICKUP)", s)
	}
}

func parseMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(s)); m {
	case MethodCash, MethodCard, MethodYape, MethodPlin, MethodOnline:
		return m, nil
	default:
		return "", fmt.Errorf("invalid payment_method: %q (allowed: CASH, CARD, YAPE, PLIN, ONLINE)", s)
	}
}

func parseStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(s))
	switch st {
	case StatusPendingPaymentConfirmation, StatusPendingConfirmation, StatusNew,
		StatusConfirmed, StatusPreparing, StatusAssembling, StatusReadyForAssembly,
		StatusReady, StatusEnRoute, StatusDelivered, StatusPickedUp, StatusPaid,
		StatusAccountRequested, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("invalid status: %q", s)
	}
}

func parseRoleOr(s string, fallback ActorRole) ActorRole {
	switch r := ActorRole(strings.ToUpper(s)); r {
	case RoleAdmin, RoleCook, RoleDriver, RoleReceptionist, RoleCustomer:
		return r
	default:
		return fallback
	}
}

func parseShiftOr(s string, fallback Shift) Shift {
	switch sh := Shift(strings.ToUpper(s)); sh {
	case ShiftMorning, ShiftAfternoon, ShiftEvening:
		return sh
	default:
		return fallback
	}
}

// ParsePaymentMethod is the exported form used by the payment module.
func ParsePaymentMethod(s string) (PaymentMethod, error) { return parseMethod(s) }

// ParseRoleOr is the exported form used by the payment module.
func ParseRoleOr(s string, fallback ActorRole) ActorRole { return parseRoleOr(s, fallback) }

// ValidPhone reports whether a customer phone matches the loyalty format.
func ValidPhone(phone string) bool { return phonePattern.MatchString(phone) }

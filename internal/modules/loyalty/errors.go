package loyalty

import "errors"

var (
	ErrProgramNotFound    = errors.New("loyalty program not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerExists     = errors.New("customer already registered")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points for reward")
)

package promotions

import "errors"

var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrNotApplicable     = errors.New("promotion is not applicable to this order")
	ErrInactive          = errors.New("promotion is not active")
)

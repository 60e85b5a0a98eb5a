package promotions

// Kind discriminates the promotion rule.
type Kind string

const (
	// KindFixedCombo bundles N named products at a fixed price.
	KindFixedCombo Kind = "FIXED_COMBO"
	// KindTwoForOne gives the second unit of a product for free.
	KindTwoForOne Kind = "TWO_FOR_ONE"
)

// ComboItem is one required product of a fixed combo.
type ComboItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Conditions is the kind-specific rule payload.
type Conditions struct {
	// Fixed combo
	Products   []ComboItem `json:"products,omitempty"`
	FixedPrice float64     `json:"fixed_price,omitempty"`
	// Two for one
	ProductID string `json:"product_id,omitempty"`
}

// Promotion is a standing discount rule, independent of any single order.
type Promotion struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Kind        Kind       `json:"kind"`
	Active      bool       `json:"active"`
	Conditions  Conditions `json:"conditions"`
}

// CreatePromotionRequest is the payload for defining a promotion.
type CreatePromotionRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Kind        string     `json:"kind"`
	Active      *bool      `json:"active,omitempty"`
	Conditions  Conditions `json:"conditions"`
}

// ApplyRequest applies a promotion to an existing order.
type ApplyRequest struct {
	OrderID     string `json:"order_id"`
	PromotionID string `json:"promotion_id"`
}

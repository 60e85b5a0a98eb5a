package promotions

import (
	"fmt"

	"github.com/uchu51/restobar-backend/internal/modules/catalog"
	"github.com/uchu51/restobar-backend/internal/modules/orders"
)

// productLookup resolves a catalog product by ID.
type productLookup func(id string) (*catalog.Product, error)

// unpromotedCount counts units of a product not yet claimed by a promotion.
// Reward lines never count.
func unpromotedCount(items []orders.OrderItem, productID string) int {
	n := 0
	for _, item := range items {
		if item.ProductID == productID && item.PromotionID == "" && !item.IsReward {
			n += item.Quantity
		}
	}
	return n
}

// IsApplicable reports whether an order's current items satisfy a promotion's
// conditions. Read-only: no mutation, no price math.
func IsApplicable(items []orders.OrderItem, p *Promotion) bool {
	if !p.Active {
		return false
	}
	switch p.Kind {
	case KindTwoForOne:
		return p.Conditions.ProductID != "" && unpromotedCount(items, p.Conditions.ProductID) >= 2
	case KindFixedCombo:
		if len(p.Conditions.Products) == 0 {
			return false
		}
		for _, req := range p.Conditions.Products {
			if unpromotedCount(items, req.ProductID) < req.Quantity {
				return false
			}
		}
		return true
	}
	return false
}

// Applicable filters the active promotions an order currently qualifies for.
func Applicable(items []orders.OrderItem, promos []*Promotion) []*Promotion {
	var out []*Promotion
	for _, p := range promos {
		if IsApplicable(items, p) {
			out = append(out, p)
		}
	}
	return out
}

// Apply rewrites an order's items with the promotion's pricing. Touched lines
// get the promotion tag and their sent-to-kitchen flag cleared, since a price
// change must be re-confirmed by staff. The input slice is not modified.
func Apply(items []orders.OrderItem, p *Promotion, product productLookup) ([]orders.OrderItem, error) {
	if !p.Active {
		return nil, ErrInactive
	}
	if !IsApplicable(items, p) {
		return nil, fmt.Errorf("%w: %s", ErrNotApplicable, p.ID)
	}
	out := make([]orders.OrderItem, len(items))
	copy(out, items)

	switch p.Kind {
	case KindTwoForOne:
		return applyTwoForOne(out, p, product)
	case KindFixedCombo:
		return applyFixedCombo(out, p, product)
	}
	return nil, fmt.Errorf("unsupported promotion kind: %s", p.Kind)
}

// applyTwoForOne keeps the first matching unit at full price and zeroes the
// second, both tagged with the promotion. A line holding more than one unit
// is split so the free unit carries price 0 on its own entry.
func applyTwoForOne(items []orders.OrderItem, p *Promotion, product productLookup) ([]orders.OrderItem, error) {
	prod, err := product(p.Conditions.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %s not found", p.Conditions.ProductID)
	}

	items, paidIdx := takeUnit(items, p.Conditions.ProductID)
	items[paidIdx].PromotionID = p.ID
	items[paidIdx].SentToKitchen = false

	items, freeIdx := takeUnit(items, p.Conditions.ProductID)
	items[freeIdx].PromotionID = p.ID
	items[freeIdx].Price = 0
	items[freeIdx].OriginalPrice = prod.Price
	items[freeIdx].SentToKitchen = false
	return items, nil
}

// applyFixedCombo redistributes the fixed bundle price proportionally over
// the constituent items: each required line's price becomes
// originalPrice × (fixedPrice / Σ originalPrices). The bundle total is what
// matters for revenue; the per-item split is deliberately approximate.
func applyFixedCombo(items []orders.OrderItem, p *Promotion, product productLookup) ([]orders.OrderItem, error) {
	var totalOriginal float64
	prices := map[string]float64{}
	for _, req := range p.Conditions.Products {
		prod, err := product(req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", req.ProductID)
		}
		prices[req.ProductID] = prod.Price
		totalOriginal += prod.Price * float64(req.Quantity)
	}
	if totalOriginal <= 0 {
		return nil, fmt.Errorf("combo has no priced products")
	}
	ratio := p.Conditions.FixedPrice / totalOriginal

	for _, req := range p.Conditions.Products {
		remaining := req.Quantity
		for i := range items {
			if remaining <= 0 {
				break
			}
			if items[i].ProductID != req.ProductID || items[i].PromotionID != "" || items[i].IsReward {
				continue
			}
			remaining -= items[i].Quantity
			items[i].Price = prices[req.ProductID] * ratio
			items[i].OriginalPrice = prices[req.ProductID]
			items[i].PromotionID = p.ID
			items[i].SentToKitchen = false
		}
	}
	return items, nil
}

// takeUnit isolates one un-promoted unit of a product as its own line and
// returns its index, splitting a multi-unit line when needed.
func takeUnit(items []orders.OrderItem, productID string) ([]orders.OrderItem, int) {
	for i := range items {
		if items[i].ProductID != productID || items[i].PromotionID != "" || items[i].IsReward {
			continue
		}
		if items[i].Quantity == 1 {
			return items, i
		}
		items[i].Quantity--
		unit := items[i]
		unit.Quantity = 1
		unit.SentToKitchen = false
		items = append(items, unit)
		return items, len(items) - 1
	}
	return items, -1
}

// CartItems synthesizes ready-priced lines for a promotion straight from the
// catalog, for the storefront flow where a customer adds a promotion as a
// fresh cart entry.
func CartItems(p *Promotion, product productLookup) ([]orders.OrderItem, error) {
	if !p.Active {
		return nil, ErrInactive
	}
	switch p.Kind {
	case KindFixedCombo:
		var totalOriginal float64
		prods := map[string]*catalog.Product{}
		for _, req := range p.Conditions.Products {
			prod, err := product(req.ProductID)
			if err != nil {
				return nil, fmt.Errorf("product %s not found", req.ProductID)
			}
			prods[req.ProductID] = prod
			totalOriginal += prod.Price * float64(req.Quantity)
		}
		if totalOriginal <= 0 {
			return nil, fmt.Errorf("combo has no priced products")
		}
		ratio := p.Conditions.FixedPrice / totalOriginal

		var items []orders.OrderItem
		for _, req := range p.Conditions.Products {
			prod := prods[req.ProductID]
			for i := 0; i < req.Quantity; i++ {
				items = append(items, orders.OrderItem{
					ProductID:     prod.ID,
					Name:          prod.Name,
					Quantity:      1,
					Price:         prod.Price * ratio,
					OriginalPrice: prod.Price,
					PromotionID:   p.ID,
				})
			}
		}
		return items, nil

	case KindTwoForOne:
		prod, err := product(p.Conditions.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", p.Conditions.ProductID)
		}
		return []orders.OrderItem{
			{ProductID: prod.ID, Name: prod.Name, Quantity: 1, Price: prod.Price,
				OriginalPrice: prod.Price, PromotionID: p.ID},
			{ProductID: prod.ID, Name: prod.Name, Quantity: 1, Price: 0,
				OriginalPrice: prod.Price, PromotionID: p.ID},
		}, nil
	}
	return nil, fmt.Errorf("unsupported promotion kind: %s", p.Kind)
}

package orders

// CalculateTotal recomputes an order total from scratch: the sum over line
// items of (effective price + sauce prices) × quantity. Totals are never
// patched incrementally; every mutation calls this to keep the derived
// value drift-free.
func CalculateTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		unit := item.Price
		for _, s := range item.Sauces {
			unit += s.Price
		}
		total += unit * float64(item.Quantity)
	}
	return round2(total)
}

func round2(v float64) float64 {
	if v < 0 {
		return -round2(-v)
	}
	return float64(int(v*100+0.5)) / 100
}

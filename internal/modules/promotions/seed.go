package promotions

// seedPromotions installs the default promotions on first boot.
func seedPromotions() []*Promotion {
	return []*Promotion{
		{
			ID:          "promo-1",
			Name:        "Combo Clásico",
			Description: "Una Clásica Norteña con papas y gaseosa a un súper precio.",
			Kind:        KindFixedCombo,
			Active:      true,
			Conditions: Conditions{
				Products: []ComboItem{
					{ProductID: "prod-101", Quantity: 1},
					{ProductID: "prod-502", Quantity: 1},
					{ProductID: "prod-601", Quantity: 1},
				},
				FixedPrice: 16.00,
			},
		},
		{
			ID:          "promo-2",
			Name:        "2x1 en Alitas BBQ",
			Description: "Llévate dos porciones de Alitas BBQ pagando solo una.",
			Kind:        KindTwoForOne,
			Active:      true,
			Conditions:  Conditions{ProductID: "prod-301"},
		},
	}
}

package loyalty

// seedPrograms returns the default loyalty program used when the restobar
// boots with an empty database.
func seedPrograms() []*Program {
	return []*Program{
		{
			ID:          "prog-1",
			Name:        "Programa Estándar",
			Description: "Acumula puntos por cada compra y canjéalos por premios.",
			Active:      true,
			Config: ProgramConfig{
				Method:          ByAmount,
				PointsPerAmount: 5,
				AmountForPoints: 10,
			},
			Rewards: []Reward{
				{ID: "rec-1", Name: "Gaseosa gratis", PointsRequired: 50, ProductID: "prod-601"},
				{ID: "rec-2", Name: "Papas fritas gratis", PointsRequired: 80, ProductID: "prod-502"},
				{ID: "rec-3", Name: "Descuento especial", PointsRequired: 100},
			},
		},
	}
}

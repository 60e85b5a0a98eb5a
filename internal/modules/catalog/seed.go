package catalog

// seedProducts is the starter menu installed on first boot, before the
// restaurant has saved a catalog of its own.
func seedProducts() []*Product {
	return []*Product{
		{ID: "prod-101", Name: "Clásica Norteña", Category: "Hamburguesas", Price: 10.00, Cost: 4.00, Stock: 20,
			Description: "Hamburguesa artesanal con lechuga fresca, tomate y cremas de la casa."},
		{ID: "prod-102", Name: "Queso Power", Category: "Hamburguesas", Price: 12.00, Cost: 5.00, Stock: 18,
			Description: "Nuestra clásica con una generosa capa de queso Edam fundido."},
		{ID: "prod-103", Name: "Doble Norteña", Category: "Hamburguesas", Price: 16.00, Cost: 7.00, Stock: 15,
			Description: "Doble carne, doble queso, para un apetito voraz."},
		{ID: "prod-201", Name: "Combo Broaster Personal", Category: "Pollo Broaster", Price: 14.00, Cost: 6.00, Stock: 30,
			Description: "1 pieza de pollo broaster + papas fritas crujientes."},
		{ID: "prod-202", Name: "Combo Dúo Broaster", Category: "Pollo Broaster", Price: 22.00, Cost: 9.50, Stock: 30,
			Description: "2 piezas de pollo broaster, papas fritas y bebida personal."},
		{ID: "prod-301", Name: "Alitas BBQ x4", Category: "Alitas", Price: 18.00, Cost: 8.00, Stock: 25,
			Description: "4 alitas bañadas en salsa BBQ, acompañadas de papas fritas."},
		{ID: "prod-401", Name: "Salchipapa Clásica", Category: "Salchipapas y Mixtos", Price: 10.00, Cost: 4.50, Stock: 50,
			Description: "Papas fritas crocantes con hotdog en rodajas y todas las cremas."},
		{ID: "prod-502", Name: "Papas Fritas Personales", Category: "Para Picar", Price: 6.00, Cost: 2.50, Stock: 100,
			Description: "Una porción personal de papas crujientes."},
		{ID: "prod-601", Name: "Gaseosa Personal", Category: "Bebidas", Price: 4.00, Cost: 1.50, Stock: 100,
			Description: "Elige tu gaseosa favorita para acompañar tu pedido."},
		{ID: "prod-701", Name: "Pie de Manzana Casero", Category: "Postres", Price: 8.00, Cost: 3.50, Stock: 15,
			Description: "Una porción de pie de manzana hecho en casa."},
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters served by the /metrics endpoint when METRICS_ENABLED=true.
var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restobar_orders_created_total",
		Help: "Orders created, across all channels.",
	})

	PaymentsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restobar_payments_registered_total",
		Help: "Payments registered against orders.",
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftlogistics_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	StatusUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftlogistics_status_updates_total",
		Help: "Total number of order status updates applied.",
	})

	DispatchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftlogistics_dispatch_failures_total",
		Help: "Total number of failed best-effort queue publishes.",
	},
		[]string{"queue"},
	)
)

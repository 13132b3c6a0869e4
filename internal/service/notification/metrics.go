package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	scopeOrder = "order"
	scopeAll   = "all"
)

var (
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Status changed events published to the fan-out",
		},
		[]string{"new_status"},
	)

	EventsDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_delivered_total",
			Help: "Status changed events queued to subscribers",
		},
		[]string{"scope"},
	)

	EventsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_dropped_total",
			Help: "Status changed events lost because a subscriber queue was full",
		},
		[]string{"scope"},
	)

	ActiveSubscriptions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "order_events_active_subscriptions",
			Help: "Currently open status changed subscriptions",
		},
		[]string{"scope"},
	)
)

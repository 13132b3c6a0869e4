package outbox_relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OutboxRelayedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_outbox_relayed_total",
			Help: "Outbox messages delivered to Kafka",
		},
	)

	OutboxPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_outbox_pending",
			Help: "Outbox messages waiting to be delivered",
		},
	)
)

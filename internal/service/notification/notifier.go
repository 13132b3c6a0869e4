package notification

import (
	"context"
	"strings"

	"ordertracker/internal/entities"
	"ordertracker/internal/pkg/config"
	"ordertracker/pkg/broadcast"
	"ordertracker/pkg/logger"
)

// TopicAllOrders получает события всех заказов (админка).
const TopicAllOrders = "orders"

func OrderTopic(orderID string) string {
	return "order:" + orderID
}

type Notifier struct {
	log logger.Logger
	hub *broadcast.Hub[entities.OrderStatusChanged]
}

func New(log logger.Logger, cfg *config.Notification) *Notifier {
	policy := broadcast.DropOldest
	if cfg.OverflowPolicy == config.OverflowDisconnect {
		policy = broadcast.Disconnect
	}

	return &Notifier{
		log: log.With(logger.NewField("component", "notifier")),
		hub: broadcast.NewHub[entities.OrderStatusChanged](broadcast.Options{
			Buffer:   cfg.SubscriberBuffer,
			Overflow: policy,
			OnDrop: func(topic string) {
				EventsDroppedTotal.WithLabelValues(scopeOf(topic)).Inc()
			},
			OnSubscribe: func(topic string) {
				ActiveSubscriptions.WithLabelValues(scopeOf(topic)).Inc()
			},
			OnUnsubscribe: func(topic string, _ error) {
				ActiveSubscriptions.WithLabelValues(scopeOf(topic)).Dec()
			},
		}),
	}
}

// Publish рассылает событие подписчикам заказа и общему топику. Не блокируется.
func (n *Notifier) Publish(event entities.OrderStatusChanged) {
	EventsPublishedTotal.WithLabelValues(event.NewStatus.String()).Inc()

	delivered := n.hub.Publish(OrderTopic(event.OrderID), event)
	EventsDeliveredTotal.WithLabelValues(scopeOrder).Add(float64(delivered))

	delivered = n.hub.Publish(TopicAllOrders, event)
	EventsDeliveredTotal.WithLabelValues(scopeAll).Add(float64(delivered))
}

// SubscribeOrder события одного заказа. Подписка живёт, пока жив ctx.
func (n *Notifier) SubscribeOrder(ctx context.Context, orderID string) *broadcast.Subscription[entities.OrderStatusChanged] {
	return n.subscribe(ctx, OrderTopic(orderID))
}

// SubscribeAll события всех заказов.
func (n *Notifier) SubscribeAll(ctx context.Context) *broadcast.Subscription[entities.OrderStatusChanged] {
	return n.subscribe(ctx, TopicAllOrders)
}

func (n *Notifier) subscribe(ctx context.Context, topic string) *broadcast.Subscription[entities.OrderStatusChanged] {
	return n.hub.Subscribe(ctx, topic)
}

// Subscribers число открытых подписок на события заказа.
func (n *Notifier) Subscribers(orderID string) int {
	return n.hub.Subscribers(OrderTopic(orderID))
}

// Close завершает все подписки с broadcast.ErrHubClosed.
func (n *Notifier) Close() {
	n.hub.Close()
	n.log.Info("notifier closed")
}

func scopeOf(topic string) string {
	if strings.HasPrefix(topic, "order:") {
		return scopeOrder
	}
	return scopeAll
}

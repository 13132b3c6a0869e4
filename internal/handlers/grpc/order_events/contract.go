//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_events_test
package order_events

import (
	"context"

	"ordertracker/internal/entities"
	"ordertracker/pkg/broadcast"
	"ordertracker/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetOrder(ctx context.Context, id string) (*entities.Order, error)
}

type Subscriber interface {
	SubscribeOrder(ctx context.Context, orderID string) *broadcast.Subscription[entities.OrderStatusChanged]
	SubscribeAll(ctx context.Context) *broadcast.Subscription[entities.OrderStatusChanged]
}

type TokenParser interface {
	Parse(token string) (entities.Actor, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracking_test
package tracking

import (
	"context"

	"ordertracker/internal/entities"
	"ordertracker/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// EventSource live-поток событий заказа. Stream блокируется до конца потока:
// nil означает штатное завершение (терминальный статус), ошибки транспорта
// оборачивают ErrTransport.
type EventSource interface {
	Stream(ctx context.Context, orderID string, handle func(entities.OrderStatusChanged)) error
}

type OrderPoller interface {
	GetOrder(ctx context.Context, orderID string) (*entities.Order, error)
}

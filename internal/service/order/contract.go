//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"
	"time"

	"ordertracker/internal/entities"
	"ordertracker/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]entities.Order, error)
	GetLatestByCustomer(ctx context.Context, customerID string, statuses []entities.OrderStatusType) (*entities.Order, error)
	ListOrders(ctx context.Context, statuses []entities.OrderStatusType) ([]entities.Order, error)
	// UpdateStatus compare-and-set: обновляет только если текущий статус равен expected,
	// иначе ErrStatusConflict.
	UpdateStatus(ctx context.Context, orderModify entities.OrderModify, expected entities.OrderStatusType) (*entities.Order, error)
}

type OutboxRepository interface {
	Insert(ctx context.Context, message entities.OutboxMessage) error
}

// OrderCache представление заказа для частых чтений. Промах отдаётся как ErrCacheMiss.
type OrderCache interface {
	Get(ctx context.Context, id string) (*entities.Order, error)
	Set(ctx context.Context, order *entities.Order) error
}

type Notifier interface {
	Publish(event entities.OrderStatusChanged)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ETAFactory interface {
	CalculateETA(status entities.OrderStatusType, baseTime time.Time) (time.Time, bool)
}

type LocationFactory interface {
	Location(status entities.OrderStatusType, deliveryType entities.DeliveryType) string
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

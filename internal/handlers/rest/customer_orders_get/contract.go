//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=customer_orders_get_test
package customer_orders_get

import (
	"context"

	"ordertracker/internal/entities"
	"ordertracker/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ListCustomerOrders(ctx context.Context, customerID string) ([]entities.Order, error)
}

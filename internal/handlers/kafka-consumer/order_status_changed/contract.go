//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_status_changed_test
package order_status_changed

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
	Record(ctx context.Context, event entities.OrderStatusChanged) error
}

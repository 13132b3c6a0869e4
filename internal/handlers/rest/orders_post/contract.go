//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_post_test
package orders_post

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
	CreateOrder(ctx context.Context, draft entities.OrderModify) (*entities.Order, error)
}

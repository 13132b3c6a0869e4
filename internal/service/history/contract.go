//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=history_test
package history

import (
	"context"

	"ordertracker/internal/entities"
)

type Repository interface {
	Insert(ctx context.Context, entry entities.StatusHistoryEntry) (bool, error)
	ListByOrder(ctx context.Context, orderID string) ([]entities.StatusHistoryEntry, error)
}

// OrderReader нужен, чтобы отличить неизвестный заказ от заказа без переходов.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*entities.Order, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=outbox_relay_test
package outbox_relay

import (
	"context"
	"time"

	"ordertracker/internal/entities"
)

type OutboxRepository interface {
	FetchPending(ctx context.Context, limit int) ([]entities.OutboxMessage, error)
	MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error
	CountPending(ctx context.Context) (int64, error)
}

type Producer interface {
	Send(ctx context.Context, messages []entities.OutboxMessage) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

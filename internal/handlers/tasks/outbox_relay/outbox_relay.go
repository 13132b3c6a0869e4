package outbox_relay

import (
	"context"
	"fmt"
	"time"
)

// maxBatchesPerRun ограничивает один запуск, чтобы большой хвост не держал
// задачу дольше интервала.
const maxBatchesPerRun = 10

type OutboxRelay struct {
	repository OutboxRepository
	producer   Producer
	txManager  TxManager
	interval   time.Duration
	batchSize  int
	now        func() time.Time
}

func NewOutboxRelay(
	repository OutboxRepository,
	producer Producer,
	txManager TxManager,
	interval time.Duration,
	batchSize int,
) *OutboxRelay {
	return &OutboxRelay{
		repository: repository,
		producer:   producer,
		txManager:  txManager,
		interval:   interval,
		batchSize:  batchSize,
		now:        time.Now,
	}
}

func (o *OutboxRelay) TTL() time.Duration {
	return o.interval
}

// Do отправляет накопившиеся сообщения пачками. Пачка помечается отправленной
// в той же транзакции, в которой была заблокирована, поэтому при сбое Kafka
// сообщения останутся в outbox и уйдут в следующий раз (at-least-once).
func (o *OutboxRelay) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	for range maxBatchesPerRun {
		sent, err := o.relayBatch(ctxWithTimeout)
		if err != nil {
			return err
		}
		OutboxRelayedTotal.Add(float64(sent))
		if sent < o.batchSize {
			break
		}
	}

	pending, err := o.repository.CountPending(ctxWithTimeout)
	if err != nil {
		return fmt.Errorf("count pending outbox messages: %w", err)
	}
	OutboxPending.Set(float64(pending))

	return nil
}

func (o *OutboxRelay) relayBatch(ctx context.Context) (int, error) {
	var sent int
	err := o.txManager.Do(ctx, func(ctx context.Context) error {
		messages, err := o.repository.FetchPending(ctx, o.batchSize)
		if err != nil {
			return fmt.Errorf("fetch pending outbox messages: %w", err)
		}
		if len(messages) == 0 {
			return nil
		}

		if err := o.producer.Send(ctx, messages); err != nil {
			return fmt.Errorf("send outbox messages: %w", err)
		}

		ids := make([]int64, len(messages))
		for i, msg := range messages {
			ids[i] = msg.ID
		}
		if err := o.repository.MarkSent(ctx, ids, o.now()); err != nil {
			return fmt.Errorf("mark outbox messages sent: %w", err)
		}

		sent = len(messages)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}

func (o *OutboxRelay) Info() string {
	return "order outbox relay"
}

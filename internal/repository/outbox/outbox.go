package outbox

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"ordertracker/internal/entities"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Insert пишет сообщение в той же транзакции, что и смена статуса (транзакция берётся из ctx).
func (r *Repository) Insert(ctx context.Context, message entities.OutboxMessage) error {
	builder := qb.
		Insert("order_outbox").
		Columns("topic", "key", "payload", "created_at")

	createdAt := any(sq.Expr("NOW()"))
	if !message.CreatedAt.IsZero() {
		createdAt = message.CreatedAt
	}

	query, args, err := builder.
		Values(message.Topic, message.Key, message.Payload, createdAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected outbox repository insert error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected outbox repository insert error: %w", err)
	}
	return nil
}

// FetchPending блокирует до limit неотправленных сообщений в порядке вставки.
// Вызывается внутри транзакции; параллельные релеи пропускают заблокированные строки.
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]entities.OutboxMessage, error) {
	query, args, err := qb.
		Select("id", "topic", "key", "payload", "created_at").
		From("order_outbox").
		Where(sq.Eq{"sent_at": nil}).
		OrderBy("id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}
	defer rows.Close()

	messages := make([]entities.OutboxMessage, 0, limit)
	for rows.Next() {
		var msg entities.OutboxMessage
		if err := rows.Scan(&msg.ID, &msg.Topic, &msg.Key, &msg.Payload, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}

	return messages, nil
}

func (r *Repository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := qb.
		Update("order_outbox").
		Set("sent_at", sentAt).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected outbox repository mark sent error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected outbox repository mark sent error: %w", err)
	}
	return nil
}

// CountPending число неотправленных сообщений, для метрики отставания релея.
func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM order_outbox WHERE sent_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unexpected outbox repository count error: %w", err)
	}
	return count, nil
}

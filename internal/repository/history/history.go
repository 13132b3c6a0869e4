package history

import (
	"context"
	"fmt"

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

// Insert идемпотентна по event_id: повторная доставка того же события из Kafka ничего не меняет.
// Возвращает false, если событие уже было записано.
func (r *Repository) Insert(ctx context.Context, entry entities.StatusHistoryEntry) (bool, error) {
	query, args, err := qb.
		Insert("order_status_history").
		Columns("event_id", "order_id", "previous_status", "new_status", "current_location", "occurred_at").
		Values(
			entry.EventID,
			entry.OrderID,
			entry.PreviousStatus.String(),
			entry.NewStatus.String(),
			entry.CurrentLocation,
			entry.OccurredAt,
		).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("unexpected history repository insert error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("unexpected history repository insert error: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByOrder записи по времени события.
func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]entities.StatusHistoryEntry, error) {
	query, args, err := qb.
		Select("event_id", "order_id", "previous_status", "new_status", "current_location", "occurred_at").
		From("order_status_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("occurred_at", "event_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected history repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected history repository list error: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.StatusHistoryEntry, 0, 4)
	for rows.Next() {
		var (
			entry          entities.StatusHistoryEntry
			previousStatus string
			newStatus      string
		)
		err := rows.Scan(
			&entry.EventID,
			&entry.OrderID,
			&previousStatus,
			&newStatus,
			&entry.CurrentLocation,
			&entry.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected history repository list error: %w", err)
		}
		entry.PreviousStatus = entities.OrderStatusType(previousStatus)
		entry.NewStatus = entities.OrderStatusType(newStatus)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected history repository list error: %w", err)
	}

	return entries, nil
}

package history

import (
	"context"
	"fmt"

	"ordertracker/internal/entities"
)

type History struct {
	repository  Repository
	orderReader OrderReader
}

func New(repository Repository, orderReader OrderReader) *History {
	return &History{
		repository:  repository,
		orderReader: orderReader,
	}
}

// Record добавляет событие в проекцию истории. Повтор того же события даёт ErrDuplicateEvent.
func (s *History) Record(ctx context.Context, event entities.OrderStatusChanged) error {
	if event.EventID == "" || event.OrderID == "" || !event.NewStatus.IsKnown() || event.OccurredAt.IsZero() {
		return ErrInvalidEvent
	}

	inserted, err := s.repository.Insert(ctx, entities.StatusHistoryEntry{
		EventID:         event.EventID,
		OrderID:         event.OrderID,
		PreviousStatus:  event.PreviousStatus,
		NewStatus:       event.NewStatus,
		CurrentLocation: event.CurrentLocation,
		OccurredAt:      event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("record status change: %w", err)
	}
	if !inserted {
		return ErrDuplicateEvent
	}

	return nil
}

// GetOrderHistory переходы заказа по времени. Ошибка поиска заказа пробрасывается как есть.
func (s *History) GetOrderHistory(ctx context.Context, orderID string) ([]entities.StatusHistoryEntry, error) {
	if _, err := s.orderReader.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	entries, err := s.repository.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order history: %w", err)
	}

	return entries, nil
}

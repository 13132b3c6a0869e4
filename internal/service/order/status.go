package order

import (
	"context"
	"errors"
	"fmt"

	"ordertracker/internal/entities"
	"ordertracker/internal/pkg/events"
	"ordertracker/pkg/logger"
)

// ApplyTransition переводит заказ в requested от имени actor.
//
// Порядок проверок: неизвестный статус, неизвестный заказ, терминальный статус,
// права actor, повторный запрос текущего статуса (успех без записи и события),
// ребро графа с учётом типа получения.
func (s *Order) ApplyTransition(
	ctx context.Context,
	orderID string,
	requested entities.OrderStatusType,
	actor entities.Actor,
) (*entities.Order, error) {
	if !requested.IsKnown() {
		return nil, ErrInvalidStatus
	}
	if !isValidOrderID(orderID) {
		return nil, ErrOrderNotFound
	}

	unlock := s.locks.Lock(orderID)
	defer unlock()

	current, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if current.Status.IsTerminal() {
		return nil, ErrAlreadyTerminal
	}
	if err := checkActor(current, requested, actor); err != nil {
		return nil, err
	}
	if current.Status == requested {
		return current, nil
	}
	if err := checkEdge(current, requested); err != nil {
		return nil, err
	}

	now := s.now()
	location := s.locationFactory.Location(requested, current.DeliveryType)
	eta := current.EstimatedCompletion
	if next, ok := s.etaFactory.CalculateETA(requested, now); ok {
		eta = &next
	}

	eventID, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}
	event := entities.OrderStatusChanged{
		EventID:             eventID,
		OrderID:             current.ID,
		CustomerID:          current.CustomerID,
		PreviousStatus:      current.Status,
		NewStatus:           requested,
		CurrentLocation:     location,
		EstimatedCompletion: eta,
		OccurredAt:          now,
	}
	payload, err := events.EncodeStatusChanged(event)
	if err != nil {
		return nil, err
	}

	var updated *entities.Order
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repository.UpdateStatus(ctx, entities.OrderModify{
			ID:                  &current.ID,
			Status:              &requested,
			CurrentLocation:     &location,
			EstimatedCompletion: eta,
			UpdatedAt:           &now,
		}, current.Status)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		if err := s.outboxRepository.Insert(ctx, entities.OutboxMessage{
			Topic:     s.outboxTopic,
			Key:       current.ID,
			Payload:   payload,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("insert outbox message: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			return nil, s.resolveConflict(ctx, orderID)
		}
		return nil, err
	}

	s.refreshView(ctx, updated)
	s.notifier.Publish(event)

	s.log.Info("order status changed",
		logger.NewField("order_id", updated.ID),
		logger.NewField("previous_status", event.PreviousStatus.String()),
		logger.NewField("new_status", event.NewStatus.String()),
		logger.NewField("actor", actorName(actor)),
	)

	return updated, nil
}

// CancelOrder отмена заказа владельцем или администратором.
func (s *Order) CancelOrder(ctx context.Context, orderID string, actor entities.Actor) (*entities.Order, error) {
	return s.ApplyTransition(ctx, orderID, entities.OrderCancelled, actor)
}

// resolveConflict статус поменял другой процесс между чтением и записью.
func (s *Order) resolveConflict(ctx context.Context, orderID string) error {
	fresh, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("%w: reload order: %w", ErrConcurrentModification, err)
	}
	if fresh.Status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	return fmt.Errorf("%w: order is now %s", ErrConcurrentModification, fresh.Status)
}

package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordertracker/internal/entities"
)

// TopicOrderStatusChanged топик Kafka по умолчанию, реальный берётся из KAFKA_TOPIC.
const TopicOrderStatusChanged = "order.status.changed"

var ErrMalformedEvent = errors.New("malformed order status changed event")

type statusChangedMessage struct {
	EventID             string     `json:"event_id"`
	OrderID             string     `json:"order_id"`
	CustomerID          string     `json:"customer_id"`
	PreviousStatus      string     `json:"previous_status"`
	NewStatus           string     `json:"new_status"`
	CurrentLocation     string     `json:"current_location"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	OccurredAt          time.Time  `json:"occurred_at"`
}

func EncodeStatusChanged(event entities.OrderStatusChanged) ([]byte, error) {
	payload, err := json.Marshal(statusChangedMessage{
		EventID:             event.EventID,
		OrderID:             event.OrderID,
		CustomerID:          event.CustomerID,
		PreviousStatus:      event.PreviousStatus.String(),
		NewStatus:           event.NewStatus.String(),
		CurrentLocation:     event.CurrentLocation,
		EstimatedCompletion: event.EstimatedCompletion,
		OccurredAt:          event.OccurredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode status changed: %w", err)
	}
	return payload, nil
}

func DecodeStatusChanged(payload []byte) (entities.OrderStatusChanged, error) {
	var msg statusChangedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return entities.OrderStatusChanged{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	event := entities.OrderStatusChanged{
		EventID:             msg.EventID,
		OrderID:             msg.OrderID,
		CustomerID:          msg.CustomerID,
		PreviousStatus:      entities.OrderStatusType(msg.PreviousStatus),
		NewStatus:           entities.OrderStatusType(msg.NewStatus),
		CurrentLocation:     msg.CurrentLocation,
		EstimatedCompletion: msg.EstimatedCompletion,
		OccurredAt:          msg.OccurredAt,
	}

	if event.EventID == "" || event.OrderID == "" {
		return entities.OrderStatusChanged{}, fmt.Errorf("%w: missing ids", ErrMalformedEvent)
	}
	if !event.NewStatus.IsKnown() || !event.PreviousStatus.IsKnown() {
		return entities.OrderStatusChanged{}, fmt.Errorf("%w: unknown status %q -> %q", ErrMalformedEvent, msg.PreviousStatus, msg.NewStatus)
	}
	return event, nil
}

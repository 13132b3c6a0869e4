package orderevents

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
	"ordertracker/internal/entities"
)

var ErrMalformedEvent = errors.New("malformed order event")

// ToStruct ключи те же, что у status_changed в SSE.
func ToStruct(event entities.OrderStatusChanged) (*structpb.Struct, error) {
	var eta any
	if event.EstimatedCompletion != nil {
		eta = event.EstimatedCompletion.UTC().Format(time.RFC3339Nano)
	}

	msg, err := structpb.NewStruct(map[string]any{
		"eventId":             event.EventID,
		"orderId":             event.OrderID,
		"customerId":          event.CustomerID,
		"previousStatus":      event.PreviousStatus.String(),
		"newStatus":           event.NewStatus.String(),
		"currentLocation":     event.CurrentLocation,
		"estimatedCompletion": eta,
		"occurredAt":          event.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("order event to struct: %w", err)
	}
	return msg, nil
}

func FromStruct(msg *structpb.Struct) (entities.OrderStatusChanged, error) {
	if msg == nil {
		return entities.OrderStatusChanged{}, fmt.Errorf("%w: empty message", ErrMalformedEvent)
	}
	fields := msg.GetFields()
	str := func(key string) string {
		return fields[key].GetStringValue()
	}

	event := entities.OrderStatusChanged{
		EventID:         str("eventId"),
		OrderID:         str("orderId"),
		CustomerID:      str("customerId"),
		PreviousStatus:  entities.OrderStatusType(str("previousStatus")),
		NewStatus:       entities.OrderStatusType(str("newStatus")),
		CurrentLocation: str("currentLocation"),
	}
	if event.OrderID == "" || !event.NewStatus.IsKnown() {
		return entities.OrderStatusChanged{}, fmt.Errorf("%w: order %q status %q", ErrMalformedEvent, event.OrderID, event.NewStatus)
	}

	occurredAt, err := time.Parse(time.RFC3339Nano, str("occurredAt"))
	if err != nil {
		return entities.OrderStatusChanged{}, fmt.Errorf("%w: occurredAt: %w", ErrMalformedEvent, err)
	}
	event.OccurredAt = occurredAt

	if raw := str("estimatedCompletion"); raw != "" {
		eta, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return entities.OrderStatusChanged{}, fmt.Errorf("%w: estimatedCompletion: %w", ErrMalformedEvent, err)
		}
		event.EstimatedCompletion = &eta
	}

	return event, nil
}

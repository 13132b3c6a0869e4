package entities

import "time"

// OrderStatusChanged публикуется после каждого успешного перехода.
type OrderStatusChanged struct {
	EventID             string
	OrderID             string
	CustomerID          string
	PreviousStatus      OrderStatusType
	NewStatus           OrderStatusType
	CurrentLocation     string
	EstimatedCompletion *time.Time
	OccurredAt          time.Time
}

type StatusHistoryEntry struct {
	EventID         string
	OrderID         string
	PreviousStatus  OrderStatusType
	NewStatus       OrderStatusType
	CurrentLocation string
	OccurredAt      time.Time
}

type OutboxMessage struct {
	ID        int64
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

package history

import "errors"

var (
	ErrInvalidEvent = errors.New("invalid status changed event")
	// ErrDuplicateEvent событие уже записано, повторная доставка из Kafka.
	ErrDuplicateEvent = errors.New("status changed event already recorded")
)

package order_eta

import (
	"time"

	"ordertracker/internal/entities"
)

const (
	PreparingDuration  = 30 * time.Minute
	DeliveringDuration = 20 * time.Minute
)

type ETAFactory struct{}

func New() *ETAFactory {
	return &ETAFactory{}
}

// CalculateETA ожидаемое время завершения при входе заказа в status.
// ok == false, если статус не меняет ETA и нужно оставить прежнее значение.
func (f *ETAFactory) CalculateETA(status entities.OrderStatusType, baseTime time.Time) (time.Time, bool) {
	switch status {
	case entities.OrderPreparing:
		return baseTime.Add(PreparingDuration), true
	case entities.OrderDelivering:
		return baseTime.Add(DeliveringDuration), true
	default:
		return time.Time{}, false
	}
}

package order_location

import "ordertracker/internal/entities"

const (
	LocationReceived       = "order received"
	LocationKitchen        = "kitchen"
	LocationEnRoute        = "en route"
	LocationDelivered      = "delivered"
	LocationReadyForPickup = "ready for pickup"
	LocationCancelled      = "cancelled"
)

type LocationFactory struct{}

func New() *LocationFactory {
	return &LocationFactory{}
}

// Location подпись для клиента, зависит от статуса и типа получения.
func (f *LocationFactory) Location(status entities.OrderStatusType, deliveryType entities.DeliveryType) string {
	switch status {
	case entities.OrderPending:
		return LocationReceived
	case entities.OrderPreparing:
		return LocationKitchen
	case entities.OrderDelivering:
		return LocationEnRoute
	case entities.OrderCompleted:
		if deliveryType == entities.DeliveryTypePickup {
			return LocationReadyForPickup
		}
		return LocationDelivered
	case entities.OrderCancelled:
		return LocationCancelled
	default:
		return ""
	}
}

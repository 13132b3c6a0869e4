package dto

import (
	"strings"

	"ordertracker/internal/entities"
)

// ToModify черновик заказа для сервиса. customerID уже проверен по Actor.
func (o OrderCreate) ToModify(customerID string) entities.OrderModify {
	items := make([]entities.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = entities.OrderItem{
			Name:         strings.TrimSpace(item.Name),
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Observations: item.Observations,
		}
	}

	deliveryType := entities.DeliveryType(o.DeliveryType)
	paymentMethod := entities.PaymentMethod(o.PaymentMethod)
	info := entities.DeliveryInfo(o.DeliveryInfo)

	return entities.OrderModify{
		CustomerID:    &customerID,
		Items:         items,
		Total:         o.Total,
		DeliveryType:  &deliveryType,
		DeliveryInfo:  &info,
		PaymentMethod: &paymentMethod,
	}
}

func FromOrder(o *entities.Order) Order {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			Name:         item.Name,
			UnitPrice:    item.UnitPrice.StringFixed(2),
			Quantity:     item.Quantity,
			Observations: item.Observations,
		}
	}

	return Order{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		Items:               items,
		Total:               o.Total.StringFixed(2),
		Status:              o.Status.String(),
		DeliveryType:        o.DeliveryType.String(),
		DeliveryInfo:        DeliveryInfo(o.DeliveryInfo),
		PaymentMethod:       o.PaymentMethod.String(),
		CurrentLocation:     o.CurrentLocation,
		EstimatedCompletion: o.EstimatedCompletion,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []Order {
	result := make([]Order, len(orders))
	for i := range orders {
		result[i] = FromOrder(&orders[i])
	}
	return result
}

func FromStatusChanged(e entities.OrderStatusChanged) StatusChanged {
	return StatusChanged{
		EventID:             e.EventID,
		OrderID:             e.OrderID,
		CustomerID:          e.CustomerID,
		PreviousStatus:      e.PreviousStatus.String(),
		NewStatus:           e.NewStatus.String(),
		CurrentLocation:     e.CurrentLocation,
		EstimatedCompletion: e.EstimatedCompletion,
		OccurredAt:          e.OccurredAt,
	}
}

func FromHistory(orderID string, entries []entities.StatusHistoryEntry) OrderHistory {
	result := make([]StatusHistoryEntry, len(entries))
	for i, entry := range entries {
		result[i] = StatusHistoryEntry{
			EventID:         entry.EventID,
			PreviousStatus:  entry.PreviousStatus.String(),
			NewStatus:       entry.NewStatus.String(),
			CurrentLocation: entry.CurrentLocation,
			OccurredAt:      entry.OccurredAt,
		}
	}
	return OrderHistory{OrderID: orderID, Entries: result}
}

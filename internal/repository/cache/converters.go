package cache

import "ordertracker/internal/entities"

func toView(o *entities.Order) orderView {
	items := make([]itemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = itemView(item)
	}

	return orderView{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		Items:               items,
		Total:               o.Total,
		Status:              o.Status.String(),
		DeliveryType:        o.DeliveryType.String(),
		DeliveryInfo:        deliveryView(o.DeliveryInfo),
		PaymentMethod:       o.PaymentMethod.String(),
		CurrentLocation:     o.CurrentLocation,
		EstimatedCompletion: o.EstimatedCompletion,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func toDomain(v orderView) *entities.Order {
	items := make([]entities.OrderItem, len(v.Items))
	for i, item := range v.Items {
		items[i] = entities.OrderItem(item)
	}

	return &entities.Order{
		ID:                  v.ID,
		CustomerID:          v.CustomerID,
		Items:               items,
		Total:               v.Total,
		Status:              entities.OrderStatusType(v.Status),
		DeliveryType:        entities.DeliveryType(v.DeliveryType),
		DeliveryInfo:        entities.DeliveryInfo(v.DeliveryInfo),
		PaymentMethod:       entities.PaymentMethod(v.PaymentMethod),
		CurrentLocation:     v.CurrentLocation,
		EstimatedCompletion: v.EstimatedCompletion,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

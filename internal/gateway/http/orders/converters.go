package orders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"ordertracker/internal/entities"
	"ordertracker/internal/handlers/rest/dto"
)

func toDomain(o dto.Order) (*entities.Order, error) {
	total, err := decimal.NewFromString(o.Total)
	if err != nil {
		return nil, fmt.Errorf("total %q: %w", o.Total, err)
	}

	items := make([]entities.OrderItem, len(o.Items))
	for i, item := range o.Items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("items[%d].unitPrice %q: %w", i, item.UnitPrice, err)
		}
		items[i] = entities.OrderItem{
			Name:         item.Name,
			UnitPrice:    price,
			Quantity:     item.Quantity,
			Observations: item.Observations,
		}
	}

	return &entities.Order{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		Items:               items,
		Total:               total,
		Status:              entities.OrderStatusType(o.Status),
		DeliveryType:        entities.DeliveryType(o.DeliveryType),
		DeliveryInfo:        entities.DeliveryInfo(o.DeliveryInfo),
		PaymentMethod:       entities.PaymentMethod(o.PaymentMethod),
		CurrentLocation:     o.CurrentLocation,
		EstimatedCompletion: o.EstimatedCompletion,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}, nil
}

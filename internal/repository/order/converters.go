package order

import (
	"encoding/json"
	"fmt"

	"ordertracker/internal/entities"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var items []itemDB
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	var info deliveryInfoDB
	if err := json.Unmarshal(o.DeliveryInfo, &info); err != nil {
		return nil, fmt.Errorf("decode delivery info of order %s: %w", o.ID, err)
	}

	domainItems := make([]entities.OrderItem, len(items))
	for i, item := range items {
		domainItems[i] = entities.OrderItem{
			Name:         item.Name,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Observations: item.Observations,
		}
	}

	return &entities.Order{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		Items:        domainItems,
		Total:        o.Total,
		Status:       entities.OrderStatusType(o.Status),
		DeliveryType: entities.DeliveryType(o.DeliveryType),
		DeliveryInfo: entities.DeliveryInfo{
			Name:       info.Name,
			Phone:      info.Phone,
			Address:    info.Address,
			Complement: info.Complement,
			Time:       info.Time,
		},
		PaymentMethod:       entities.PaymentMethod(o.PaymentMethod),
		CurrentLocation:     o.CurrentLocation,
		EstimatedCompletion: o.EstimatedCompletion,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}, nil
}

func ToDomainList(ordersDB []OrderDB) ([]entities.Order, error) {
	result := make([]entities.Order, 0, len(ordersDB))
	for i := range ordersDB {
		o, err := ToDomain(&ordersDB[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, nil
}

func FromDomainModify(orderModify *entities.OrderModify) (*OrderModifyDB, error) {
	if orderModify == nil {
		return nil, nil
	}
	orderDB := &OrderModifyDB{
		ID:                  orderModify.ID,
		CustomerID:          orderModify.CustomerID,
		Total:               orderModify.Total,
		CurrentLocation:     orderModify.CurrentLocation,
		EstimatedCompletion: orderModify.EstimatedCompletion,
		CreatedAt:           orderModify.CreatedAt,
		UpdatedAt:           orderModify.UpdatedAt,
	}

	if orderModify.Items != nil {
		items := make([]itemDB, len(orderModify.Items))
		for i, item := range orderModify.Items {
			items[i] = itemDB{
				Name:         item.Name,
				UnitPrice:    item.UnitPrice,
				Quantity:     item.Quantity,
				Observations: item.Observations,
			}
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("encode items: %w", err)
		}
		orderDB.Items = raw
	}
	if orderModify.DeliveryInfo != nil {
		raw, err := json.Marshal(deliveryInfoDB(*orderModify.DeliveryInfo))
		if err != nil {
			return nil, fmt.Errorf("encode delivery info: %w", err)
		}
		orderDB.DeliveryInfo = raw
	}
	if orderModify.Status != nil {
		status := orderModify.Status.String()
		orderDB.Status = &status
	}
	if orderModify.DeliveryType != nil {
		deliveryType := orderModify.DeliveryType.String()
		orderDB.DeliveryType = &deliveryType
	}
	if orderModify.PaymentMethod != nil {
		paymentMethod := orderModify.PaymentMethod.String()
		orderDB.PaymentMethod = &paymentMethod
	}

	return orderDB, nil
}

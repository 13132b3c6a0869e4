package order

import (
	"fmt"

	"ordertracker/internal/entities"
)

type edge struct {
	from entities.OrderStatusType
	to   entities.OrderStatusType
}

type rule struct {
	// пусто = для любого типа получения
	deliveryType entities.DeliveryType
	ownerAllowed bool
}

var transitions = map[edge]rule{
	{entities.OrderPending, entities.OrderPreparing}:    {},
	{entities.OrderPreparing, entities.OrderDelivering}: {deliveryType: entities.DeliveryTypeDelivery},
	{entities.OrderPreparing, entities.OrderCompleted}:  {deliveryType: entities.DeliveryTypePickup},
	{entities.OrderDelivering, entities.OrderCompleted}: {},
	{entities.OrderPending, entities.OrderCancelled}:    {ownerAllowed: true},
	{entities.OrderPreparing, entities.OrderCancelled}:  {ownerAllowed: true},
}

// checkActor админ может запросить любой статус, клиент только отмену своего заказа.
func checkActor(order *entities.Order, to entities.OrderStatusType, actor entities.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if to == entities.OrderCancelled && actor.Owns(order) {
		return nil
	}
	return fmt.Errorf("%w: %s may not move order to %s", ErrActorNotPermitted, actorName(actor), to)
}

func checkEdge(order *entities.Order, to entities.OrderStatusType) error {
	r, ok := transitions[edge{from: order.Status, to: to}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, to)
	}
	if r.deliveryType != "" && r.deliveryType != order.DeliveryType {
		return fmt.Errorf("%w: %s -> %s is not allowed for %s orders", ErrInvalidTransition, order.Status, to, order.DeliveryType)
	}
	return nil
}

// AllowedTransitions статусы, в которые actor может перевести заказ прямо сейчас.
func AllowedTransitions(order *entities.Order, actor entities.Actor) []entities.OrderStatusType {
	if order == nil || order.Status.IsTerminal() {
		return nil
	}

	var allowed []entities.OrderStatusType
	for _, to := range []entities.OrderStatusType{
		entities.OrderPreparing,
		entities.OrderDelivering,
		entities.OrderCompleted,
		entities.OrderCancelled,
	} {
		if checkActor(order, to, actor) == nil && checkEdge(order, to) == nil {
			allowed = append(allowed, to)
		}
	}
	return allowed
}

func actorName(actor entities.Actor) string {
	if actor.ID == "" {
		return "anonymous"
	}
	return string(actor.Role) + " " + actor.ID
}

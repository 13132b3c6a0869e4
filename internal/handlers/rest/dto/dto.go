// Package dto модели запросов и ответов REST API.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	Name         string          `json:"name" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unitPrice" validate:"money"`
	Quantity     int             `json:"quantity" validate:"gt=0"`
	Observations string          `json:"observations,omitempty"`
}

type DeliveryInfo struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address,omitempty"`
	Complement string `json:"complement,omitempty"`
	Time       string `json:"time,omitempty"`
}

// OrderCreate тело POST /orders. Total принимается, но сервер всегда считает сумму сам.
type OrderCreate struct {
	CustomerID    string           `json:"customerId,omitempty"`
	Items         []OrderItem      `json:"items" validate:"required,min=1,dive"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	DeliveryType  string           `json:"deliveryType" validate:"required,oneof=delivery pickup"`
	DeliveryInfo  DeliveryInfo     `json:"deliveryInfo"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,oneof=cash card pix"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	Name         string `json:"name"`
	UnitPrice    string `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	Observations string `json:"observations,omitempty"`
}

type Order struct {
	ID                  string              `json:"id"`
	CustomerID          string              `json:"customerId"`
	Items               []OrderItemResponse `json:"items"`
	Total               string              `json:"total"`
	Status              string              `json:"status"`
	DeliveryType        string              `json:"deliveryType"`
	DeliveryInfo        DeliveryInfo        `json:"deliveryInfo"`
	PaymentMethod       string              `json:"paymentMethod"`
	CurrentLocation     string              `json:"currentLocation"`
	EstimatedCompletion *time.Time          `json:"estimatedCompletion"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

type StatusChanged struct {
	EventID             string     `json:"eventId"`
	OrderID             string     `json:"orderId"`
	CustomerID          string     `json:"customerId,omitempty"`
	PreviousStatus      string     `json:"previousStatus"`
	NewStatus           string     `json:"newStatus"`
	CurrentLocation     string     `json:"currentLocation"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion"`
	OccurredAt          time.Time  `json:"occurredAt"`
}

type StatusHistoryEntry struct {
	EventID         string    `json:"eventId"`
	PreviousStatus  string    `json:"previousStatus"`
	NewStatus       string    `json:"newStatus"`
	CurrentLocation string    `json:"currentLocation"`
	OccurredAt      time.Time `json:"occurredAt"`
}

type OrderHistory struct {
	OrderID string               `json:"orderId"`
	Entries []StatusHistoryEntry `json:"entries"`
}

type PingResponse struct {
	Message string `json:"message"`
}

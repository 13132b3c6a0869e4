package cache

import (
	"time"

	"github.com/shopspring/decimal"
)

// orderView снимок заказа в redis. Версия в ключе меняется вместе с форматом.
type orderView struct {
	ID                  string          `json:"id"`
	CustomerID          string          `json:"customer_id"`
	Items               []itemView      `json:"items"`
	Total               decimal.Decimal `json:"total"`
	Status              string          `json:"status"`
	DeliveryType        string          `json:"delivery_type"`
	DeliveryInfo        deliveryView    `json:"delivery_info"`
	PaymentMethod       string          `json:"payment_method"`
	CurrentLocation     string          `json:"current_location"`
	EstimatedCompletion *time.Time      `json:"estimated_completion,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type itemView struct {
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Observations string          `json:"observations,omitempty"`
}

type deliveryView struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	Complement string `json:"complement,omitempty"`
	Time       string `json:"time"`
}

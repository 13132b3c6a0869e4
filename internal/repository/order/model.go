package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderDB struct {
	ID                  string
	CustomerID          string
	Items               []byte // jsonb
	Total               decimal.Decimal
	Status              string
	DeliveryType        string
	DeliveryInfo        []byte // jsonb
	PaymentMethod       string
	CurrentLocation     string
	EstimatedCompletion *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type OrderModifyDB struct {
	ID                  *string
	CustomerID          *string
	Items               []byte
	Total               *decimal.Decimal
	Status              *string
	DeliveryType        *string
	DeliveryInfo        []byte
	PaymentMethod       *string
	CurrentLocation     *string
	EstimatedCompletion *time.Time
	CreatedAt           *time.Time
	UpdatedAt           *time.Time
}

type itemDB struct {
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Observations string          `json:"observations,omitempty"`
}

type deliveryInfoDB struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	Complement string `json:"complement,omitempty"`
	Time       string `json:"time"`
}

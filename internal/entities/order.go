package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestCustomerID владелец заказа, оформленного без аккаунта.
const GuestCustomerID = "guest"

const DefaultDeliveryTime = "as soon as possible"

type Order struct {
	ID                  string
	CustomerID          string
	Items               []OrderItem
	Total               decimal.Decimal
	Status              OrderStatusType
	DeliveryType        DeliveryType
	DeliveryInfo        DeliveryInfo
	PaymentMethod       PaymentMethod
	CurrentLocation     string
	EstimatedCompletion *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type OrderItem struct {
	Name         string
	UnitPrice    decimal.Decimal
	Quantity     int
	Observations string
}

type DeliveryInfo struct {
	Name       string
	Phone      string
	Address    string
	Complement string
	Time       string
}

type OrderStatusType string

const (
	OrderPending    OrderStatusType = "pending"
	OrderPreparing  OrderStatusType = "preparing"
	OrderDelivering OrderStatusType = "delivering"
	OrderCompleted  OrderStatusType = "completed"
	OrderCancelled  OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsKnown() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderDelivering, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal из completed и cancelled переходов нет.
func (s OrderStatusType) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// IsActive заказ ещё в работе и показывается клиенту как текущий.
func (s OrderStatusType) IsActive() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderDelivering
}

// ActiveStatuses в порядке жизненного цикла.
func ActiveStatuses() []OrderStatusType {
	return []OrderStatusType{OrderPending, OrderPreparing, OrderDelivering}
}

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

func (t DeliveryType) String() string {
	return string(t)
}

func (t DeliveryType) IsKnown() bool {
	return t == DeliveryTypeDelivery || t == DeliveryTypePickup
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentPix  PaymentMethod = "pix"
)

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) IsKnown() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentPix:
		return true
	default:
		return false
	}
}

// CalculateTotal сумма unitPrice * quantity по всем позициям.
func CalculateTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

type OrderModify struct {
	ID                  *string
	CustomerID          *string
	Items               []OrderItem
	Total               *decimal.Decimal
	Status              *OrderStatusType
	DeliveryType        *DeliveryType
	DeliveryInfo        *DeliveryInfo
	PaymentMethod       *PaymentMethod
	CurrentLocation     *string
	EstimatedCompletion *time.Time
	CreatedAt           *time.Time
	UpdatedAt           *time.Time
}

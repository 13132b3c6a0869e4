package order

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"ordertracker/internal/entities"
)

func isValidOrderID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isValidPrice(price decimal.Decimal) bool {
	return price.IsPositive() && price.Equal(price.Round(2))
}

func validateDraft(draft entities.OrderModify) error {
	if draft.CustomerID == nil || strings.TrimSpace(*draft.CustomerID) == "" {
		return ErrMissingCustomer
	}

	if len(draft.Items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range draft.Items {
		if strings.TrimSpace(item.Name) == "" {
			return ErrInvalidItemName
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if !isValidPrice(item.UnitPrice) {
			return ErrInvalidPrice
		}
	}

	if draft.DeliveryType == nil || !draft.DeliveryType.IsKnown() {
		return ErrInvalidDeliveryType
	}
	if draft.PaymentMethod == nil || !draft.PaymentMethod.IsKnown() {
		return ErrInvalidPaymentMethod
	}

	info := draft.DeliveryInfo
	if info == nil || strings.TrimSpace(info.Name) == "" || strings.TrimSpace(info.Phone) == "" {
		return ErrMissingContact
	}
	if *draft.DeliveryType == entities.DeliveryTypeDelivery && strings.TrimSpace(info.Address) == "" {
		return ErrMissingAddress
	}

	return nil
}

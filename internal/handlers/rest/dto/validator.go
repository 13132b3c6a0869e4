package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var ErrInvalidBody = errors.New("invalid request body")

// NewValidator валидатор с именами полей из json тегов и правилами для денег и адреса.
func NewValidator() *validatorv10.Validate {
	v := validatorv10.New(validatorv10.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal валидируется как строка
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("money", func(fl validatorv10.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive() && d.Equal(d.Round(2))
	})

	v.RegisterStructValidation(orderCreateStructValidation, OrderCreate{})

	return v
}

// orderCreateStructValidation адрес обязателен только для доставки.
func orderCreateStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(OrderCreate)

	if req.DeliveryType == "delivery" && strings.TrimSpace(req.DeliveryInfo.Address) == "" {
		sl.ReportError(req.DeliveryInfo.Address, "deliveryInfo.address", "Address", "required_for_delivery", "")
	}
}

// Decode читает JSON тело в out и валидирует его.
// Ошибка всегда оборачивает ErrInvalidBody и пригодна для ответа клиенту.
func Decode(body io.Reader, out any, v *validatorv10.Validate) error {
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	if err := v.Struct(out); err != nil {
		var validationErrors validatorv10.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %s", ErrInvalidBody, describe(validationErrors))
		}
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	return nil
}

func describe(validationErrors validatorv10.ValidationErrors) string {
	parts := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Namespace()
		// первый сегмент имя структуры
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

package orders_get

import (
	"errors"
	"net/http"
	"strings"

	"ordertracker/internal/entities"
	"ordertracker/internal/handlers/rest/dto"
	"ordertracker/internal/handlers/rest/response"
	"ordertracker/internal/service/order"
	"ordertracker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "orders_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP список всех заказов для администратора. Доступ проверяет auth.RequireAdmin
// на подроутере /admin. Фильтр ?status= повторяется или перечисляется через запятую.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	statuses := parseStatuses(r.URL.Query()["status"])

	orders, err := h.service.ListOrders(r.Context(), statuses)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrValidation):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("failed to list orders", logger.NewField("error", err))
			h.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if err := response.JSON(w, http.StatusOK, dto.FromOrders(orders)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func parseStatuses(values []string) []entities.OrderStatusType {
	var statuses []entities.OrderStatusType
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			statuses = append(statuses, entities.OrderStatusType(part))
		}
	}
	return statuses
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	if err := response.ErrorJSON(w, status, message); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}

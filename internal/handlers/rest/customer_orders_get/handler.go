package customer_orders_get

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"ordertracker/internal/handlers/rest/dto"
	"ordertracker/internal/handlers/rest/response"
	"ordertracker/internal/pkg/auth"
	"ordertracker/internal/service/order"
	"ordertracker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "customer_orders_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !actor.CanAccessCustomer(customerID) {
		h.writeError(w, http.StatusForbidden, "access to these orders is not allowed")
		return
	}

	orders, err := h.service.ListCustomerOrders(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrValidation):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("failed to list customer orders",
				logger.NewField("customer_id", customerID),
				logger.NewField("error", err),
			)
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

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	if err := response.ErrorJSON(w, status, message); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}

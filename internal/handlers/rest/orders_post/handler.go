package orders_post

import (
	"errors"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
	"ordertracker/internal/entities"
	"ordertracker/internal/handlers/rest/dto"
	"ordertracker/internal/handlers/rest/response"
	"ordertracker/internal/pkg/auth"
	"ordertracker/internal/service/order"
	"ordertracker/pkg/logger"
)

type Handler struct {
	log       handlerLogger
	service   Service
	validator *validatorv10.Validate
}

func New(log handlerLogger, service Service, validator *validatorv10.Validate) *Handler {
	handlerLog := log.With(logger.NewField("handler", "orders_post"))

	return &Handler{
		log:       handlerLog,
		service:   service,
		validator: validator,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderCreateDTO dto.OrderCreate
	if err := dto.Decode(r.Body, &orderCreateDTO, h.validator); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	actor, authenticated := auth.ActorFromContext(r.Context())
	customerID, status, message := resolveCustomer(orderCreateDTO.CustomerID, actor, authenticated)
	if status != 0 {
		h.writeError(w, status, message)
		return
	}

	created, err := h.service.CreateOrder(r.Context(), orderCreateDTO.ToModify(customerID))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrValidation):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrConflict):
			h.writeError(w, http.StatusConflict, err.Error())
		default:
			h.log.Error("failed to create order", logger.NewField("error", err))
			h.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if orderCreateDTO.Total != nil && !orderCreateDTO.Total.Equal(created.Total) {
		h.log.Warn("client total differs from computed total",
			logger.NewField("order_id", created.ID),
			logger.NewField("client_total", orderCreateDTO.Total.StringFixed(2)),
			logger.NewField("total", created.Total.StringFixed(2)),
		)
	}

	if err := response.JSON(w, http.StatusCreated, dto.FromOrder(created)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// resolveCustomer определяет владельца заказа. Клиент создаёт заказ только на себя,
// админ на кого угодно, аноним только гостевой.
func resolveCustomer(requested string, actor entities.Actor, authenticated bool) (string, int, string) {
	switch {
	case !authenticated:
		if requested != "" && requested != entities.GuestCustomerID {
			return "", http.StatusUnauthorized, "authentication required"
		}
		return entities.GuestCustomerID, 0, ""

	case actor.IsAdmin():
		if requested == "" {
			return entities.GuestCustomerID, 0, ""
		}
		return requested, 0, ""

	default:
		if requested != "" && requested != actor.ID {
			return "", http.StatusForbidden, "customers may only create their own orders"
		}
		return actor.ID, 0, ""
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	if err := response.ErrorJSON(w, status, message); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}

package order_cancel_patch

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
	handlerLog := log.With(logger.NewField("handler", "order_cancel_patch"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP отмена заказа владельцем или админом, тело запроса не нужно.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cancelled, err := h.service.CancelOrder(r.Context(), orderID, actor)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrActorNotPermitted):
			h.writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, order.ErrOrderNotFound):
			h.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrAlreadyTerminal):
			h.writeError(w, http.StatusConflict, order.ErrAlreadyTerminal.Error())
		case errors.Is(err, order.ErrInvalidTransition):
			h.writeError(w, http.StatusConflict, err.Error())
		default:
			h.log.Error("failed to cancel order",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			)
			h.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if err := response.JSON(w, http.StatusOK, dto.FromOrder(cancelled)); err != nil {
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

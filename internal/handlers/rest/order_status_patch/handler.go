package order_status_patch

import (
	"errors"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
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
	handlerLog := log.With(logger.NewField("handler", "order_status_patch"))

	return &Handler{
		log:       handlerLog,
		service:   service,
		validator: validator,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var statusUpdateDTO dto.StatusUpdate
	if err := dto.Decode(r.Body, &statusUpdateDTO, h.validator); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.ApplyTransition(r.Context(), orderID, entities.OrderStatusType(statusUpdateDTO.Status), actor)
	if err != nil {
		status, message := statusFromError(err)
		if status == http.StatusInternalServerError {
			h.log.Error("failed to apply status transition",
				logger.NewField("order_id", orderID),
				logger.NewField("status", statusUpdateDTO.Status),
				logger.NewField("error", err),
			)
		}
		h.writeError(w, status, message)
		return
	}

	if err := response.JSON(w, http.StatusOK, dto.FromOrder(updated)); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// statusFromError ErrActorNotPermitted оборачивает ErrInvalidTransition, поэтому проверяется первым.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, order.ErrActorNotPermitted):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, order.ErrAlreadyTerminal):
		return http.StatusConflict, order.ErrAlreadyTerminal.Error()
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	if err := response.ErrorJSON(w, status, message); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}

package order_get

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
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
	handlerLog := log.With(logger.NewField("handler", "order_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	found, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.writeError(w, http.StatusNotFound, err.Error())
		default:
			h.log.Error("failed to get order",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			)
			h.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	// клиенты опрашивают этот путь, промежуточные кэши только мешают
	w.Header().Set("Cache-Control", "no-store")
	if err := response.JSON(w, http.StatusOK, dto.FromOrder(found)); err != nil {
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

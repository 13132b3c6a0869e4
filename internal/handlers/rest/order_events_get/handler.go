package order_events_get

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"ordertracker/internal/handlers/rest/dto"
	"ordertracker/internal/handlers/rest/eventstream"
	"ordertracker/internal/handlers/rest/response"
	"ordertracker/internal/pkg/config"
	"ordertracker/internal/service/order"
	"ordertracker/pkg/logger"
)

type Handler struct {
	log               handlerLogger
	service           Service
	subscriber        Subscriber
	heartbeatInterval time.Duration
}

func New(log handlerLogger, service Service, subscriber Subscriber, cfg *config.Notification) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_events"))

	return &Handler{
		log:               handlerLog,
		service:           service,
		subscriber:        subscriber,
		heartbeatInterval: cfg.HeartbeatInterval,
	}
}

// ServeHTTP держит SSE поток событий одного заказа: snapshot, затем status_changed и ping.
// Подписка оформляется до чтения snapshot, поэтому переход между ними не теряется.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	ctx := r.Context()

	sub := h.subscriber.SubscribeOrder(ctx, orderID)
	defer sub.Close()

	current, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.writeError(w, http.StatusNotFound, "order not found")
		default:
			h.log.Error("failed to load order for stream",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			)
			h.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	stream, err := eventstream.Start(w)
	if err != nil {
		h.log.Error("failed to start event stream", logger.NewField("error", err))
		return
	}

	streamLog := h.log.With(logger.NewField("order_id", orderID))
	if err := stream.Send(eventstream.EventSnapshot, "", dto.FromOrder(current), true); err != nil {
		streamLog.Warn("failed to write snapshot", logger.NewField("error", err))
		return
	}
	// терминальный заказ больше не изменится
	if current.Status.IsTerminal() {
		return
	}

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-sub.Events():
			if !ok {
				if err := sub.Err(); err != nil && ctx.Err() == nil {
					streamLog.Warn("subscription closed", logger.NewField("error", err))
					_ = stream.Send(eventstream.EventClosed, "", map[string]string{"reason": err.Error()}, false)
				}
				return
			}
			if err := stream.Send(eventstream.EventStatusChanged, event.EventID, dto.FromStatusChanged(event), false); err != nil {
				streamLog.Warn("failed to write event", logger.NewField("error", err))
				return
			}
			if event.NewStatus.IsTerminal() {
				return
			}

		case now := <-heartbeat.C:
			if err := stream.Ping(now); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	if err := response.ErrorJSON(w, status, message); err != nil {
		h.log.Error("encode JSON response", logger.NewField("error", err))
	}
}

package orders_events_get

import (
	"net/http"
	"time"

	"ordertracker/internal/handlers/rest/dto"
	"ordertracker/internal/handlers/rest/eventstream"
	"ordertracker/internal/pkg/config"
	"ordertracker/pkg/logger"
)

type Handler struct {
	log               handlerLogger
	subscriber        Subscriber
	heartbeatInterval time.Duration
}

func New(log handlerLogger, subscriber Subscriber, cfg *config.Notification) *Handler {
	handlerLog := log.With(logger.NewField("handler", "orders_events"))

	return &Handler{
		log:               handlerLog,
		subscriber:        subscriber,
		heartbeatInterval: cfg.HeartbeatInterval,
	}
}

// ServeHTTP SSE поток всех переходов всех заказов для операторов.
// Снимка нет, поток открывается ping событием.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sub := h.subscriber.SubscribeAll(ctx)
	defer sub.Close()

	stream, err := eventstream.Start(w)
	if err != nil {
		h.log.Error("failed to start event stream", logger.NewField("error", err))
		return
	}

	if err := stream.Send(eventstream.EventPing, "", map[string]string{"time": time.Now().UTC().Format(time.RFC3339)}, true); err != nil {
		return
	}

	h.log.Info("admin stream opened", logger.NewField("remote_addr", r.RemoteAddr))
	defer h.log.Info("admin stream closed", logger.NewField("remote_addr", r.RemoteAddr))

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-sub.Events():
			if !ok {
				if err := sub.Err(); err != nil && ctx.Err() == nil {
					h.log.Warn("subscription closed", logger.NewField("error", err))
					_ = stream.Send(eventstream.EventClosed, "", map[string]string{"reason": err.Error()}, false)
				}
				return
			}
			if err := stream.Send(eventstream.EventStatusChanged, event.EventID, dto.FromStatusChanged(event), false); err != nil {
				h.log.Warn("failed to write event", logger.NewField("error", err))
				return
			}

		case now := <-heartbeat.C:
			if err := stream.Ping(now); err != nil {
				return
			}
		}
	}
}

package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"ordertracker/pkg/logger"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	log            handlerLogger
	isShuttingDown *atomic.Bool
	db             Pinger
}

func New(log handlerLogger, isShuttingDown *atomic.Bool, db Pinger) *Handler {
	return &Handler{
		log:            log.With(logger.NewField("handler", "healthcheck")),
		isShuttingDown: isShuttingDown,
		db:             db,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("healthcheck: database is unavailable", logger.NewField("error", err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

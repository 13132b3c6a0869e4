package graceful_shutdown

import (
	"net/http"
	"sync/atomic"

	"ordertracker/internal/handlers/rest/response"
)

// Middleware после начала остановки отвечает 503 на новые запросы,
// уже принятые запросы дорабатывают на ongoingCtx.
func Middleware(isShuttingDown *atomic.Bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() {
				w.Header().Set("Connection", "close")
				_ = response.ErrorJSON(w, http.StatusServiceUnavailable, "service is shutting down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

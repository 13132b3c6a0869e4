package rate_limiter

import (
	"net/http"
	"strconv"

	"ordertracker/internal/handlers/rest/response"
	"ordertracker/internal/pkg/middlewares/metrics"
	"ordertracker/pkg/logger"
)

// Middleware общий token bucket на весь сервис. limit уходит клиенту в X-RateLimit-Limit.
func Middleware(log handlerLogger, limit int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("Retry-After", "1")
			if err := response.ErrorJSON(w, http.StatusTooManyRequests, "rate limit exceeded, try again later"); err != nil {
				log.Error("failed to write rate limit response",
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				)
			}
		})
	}
}

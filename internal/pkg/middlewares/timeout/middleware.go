package timeout

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Middleware ограничивает время обработки запроса. Маршруты с именами из skip
// (долгоживущие event stream) живут до отключения клиента.
func Middleware(timeout time.Duration, skip ...string) func(http.Handler) http.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, name := range skip {
		skipped[name] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if route := mux.CurrentRoute(r); route != nil {
				if _, ok := skipped[route.GetName()]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

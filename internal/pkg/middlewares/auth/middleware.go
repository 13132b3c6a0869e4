package auth

import (
	"errors"
	"net/http"

	"ordertracker/internal/entities"
	"ordertracker/internal/handlers/rest/response"
	"ordertracker/internal/pkg/auth"
	"ordertracker/pkg/logger"
)

// Middleware кладёт Actor в контекст, если пришёл валидный bearer токен.
// Запрос без токена проходит анонимно, с битым токеном получает 401.
func Middleware(log handlerLogger, parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if errors.Is(err, auth.ErrMissingToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err == nil {
				var actor entities.Actor
				actor, err = parser.Parse(token)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(auth.ContextWithActor(r.Context(), actor)))
					return
				}
			}

			log.Warn("rejected bearer token",
				logger.NewField("error", err),
				logger.NewField("path", r.URL.Path),
				logger.NewField("remote_addr", r.RemoteAddr),
			)
			writeError(log, w, http.StatusUnauthorized, "invalid token")
		})
	}
}

// RequireAdmin пропускает только админов: без Actor 401, не админ 403.
func RequireAdmin(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok {
				writeError(log, w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !actor.IsAdmin() {
				writeError(log, w, http.StatusForbidden, "admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(log handlerLogger, w http.ResponseWriter, status int, message string) {
	if err := response.ErrorJSON(w, status, message); err != nil {
		log.Error("failed to write auth response", logger.NewField("error", err))
	}
}

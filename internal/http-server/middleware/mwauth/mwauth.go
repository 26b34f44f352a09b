package mwauth

import (
	"log/slog"
	"net/http"
	"strings"

	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"

	"github.com/go-chi/render"
)

type TokenParser interface {
	Parse(token string) (*session.Session, error)
}

// New resolves the bearer token, if any, into a session on the request
// context. Requests without a token pass through anonymous; handlers decide
// whether that is enough.
func New(log *slog.Logger, parser TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/auth"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("malformed authorization header"))
				return
			}

			sess, err := parser.Parse(token)
			if err != nil {
				log.Warn("rejected token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		}

		return http.HandlerFunc(fn)
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}
		if !sess.IsOrganizer() {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("organizer access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

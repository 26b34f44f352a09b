package getUserEmail

import (
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/storage"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type EmailResponse struct {
	Email string `json:"email"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EmailLookup
type EmailLookup interface {
	GetUserEmail(ctx context.Context, userID string) (string, error)
}

func New(log *slog.Logger, lookup EmailLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relay.getUserEmail.New"

		log := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "userId")
		if userID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fail("user id is required", ""))
			return
		}

		email, err := lookup.GetUserEmail(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrProfileNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Fail("user email not found", userID))
				return
			}
			log.Error("failed to look up email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("failed to look up user email", err.Error()))
			return
		}

		render.JSON(w, r, EmailResponse{Email: email})
	}
}

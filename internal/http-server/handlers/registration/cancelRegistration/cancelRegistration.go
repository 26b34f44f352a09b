package cancelRegistration

import (
	"campusHub/internal/lib/api/params"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/registration"
	"context"
	"errors"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationCanceller
type RegistrationCanceller interface {
	Cancel(ctx context.Context, sess *session.Session, eventID string) error
}

func New(log *slog.Logger, canceller RegistrationCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.cancelRegistration.New"

		log := log.With(slog.String("op", op))

		eventID, err := params.EventID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		err = canceller.Cancel(r.Context(), session.FromContext(r.Context()), eventID)
		switch {
		case err == nil:
		case errors.Is(err, registration.ErrAuthRequired):
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error(registration.ErrAuthRequired.Error()))
			return
		case errors.Is(err, registration.ErrEventNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(registration.ErrEventNotFound.Error()))
			return
		case errors.Is(err, registration.ErrRegistrationNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(registration.ErrRegistrationNotFound.Error()))
			return
		default:
			log.Error("failed to cancel registration", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to cancel registration"))
			return
		}

		log.Info("registration cancelled", slog.String("event_id", eventID))

		render.JSON(w, r, response.OK())
	}
}

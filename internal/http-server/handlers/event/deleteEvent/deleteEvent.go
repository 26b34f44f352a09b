package deleteEvent

import (
	"campusHub/internal/lib/api/params"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/storage"
	"context"
	"errors"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventDeleter
type EventDeleter interface {
	SoftDeleteEvent(ctx context.Context, id, clubID string) error
}

// New hides an event of the caller's club. Registrations are kept.
func New(log *slog.Logger, deleter EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.deleteEvent.New"

		log := log.With(slog.String("op", op))

		sess := session.FromContext(r.Context())
		if !sess.IsOrganizer() {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("organizer access required"))
			return
		}

		eventID, err := params.EventID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		err = deleter.SoftDeleteEvent(r.Context(), eventID, sess.ClubID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to delete event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete event"))
			return
		}

		log.Info("event deleted", slog.String("event_id", eventID), slog.String("club_id", sess.ClubID))

		render.JSON(w, r, response.OK())
	}
}

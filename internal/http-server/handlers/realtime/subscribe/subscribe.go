package subscribe

import (
	"campusHub/internal/lib/api/params"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/realtime"
	"campusHub/internal/storage"
	"context"
	"errors"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Subscriber
type Subscriber interface {
	Serve(w http.ResponseWriter, r *http.Request, eventID string) error
}

// New upgrades an organizer's connection to a live feed of the event's
// registrations, status changes and check-ins.
func New(log *slog.Logger, events EventGetter, hub Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.realtime.subscribe.New"

		log := log.With(slog.String("op", op))

		eventID, err := params.EventID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		sess := session.FromContext(r.Context())
		if !sess.IsOrganizer() {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("organizer access required"))
			return
		}

		event, err := events.GetEvent(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}
			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event"))
			return
		}

		if !sess.Organizes(event.ClubID) {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("event belongs to another club"))
			return
		}

		err = hub.Serve(w, r, eventID)
		switch {
		case err == nil:
		case errors.Is(err, realtime.ErrHubClosed):
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("live updates are unavailable"))
		default:
			// the upgrader has already answered the request
			log.Warn("subscription failed", sl.Err(err), slog.String("event_id", eventID))
		}
	}
}

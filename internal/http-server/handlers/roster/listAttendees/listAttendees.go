package listAttendees

import (
	"campusHub/internal/lib/api/params"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/roster"
	"context"
	"errors"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type AttendeesResponse struct {
	response.Response
	Attendees []models.Attendee `json:"attendees"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AttendeeLister
type AttendeeLister interface {
	ListAttendees(ctx context.Context, sess *session.Session, eventID string, bucket roster.Bucket) ([]models.Attendee, error)
}

// New lists one roster bucket of an event. The bucket comes from the
// status query parameter and defaults to pending.
func New(log *slog.Logger, lister AttendeeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.roster.listAttendees.New"

		log := log.With(slog.String("op", op))

		eventID, err := params.EventID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		bucket := roster.Bucket(r.URL.Query().Get("status"))
		if bucket == "" {
			bucket = roster.BucketPending
		}

		attendees, err := lister.ListAttendees(r.Context(), session.FromContext(r.Context()), eventID, bucket)
		if err != nil {
			switch {
			case errors.Is(err, roster.ErrInvalidBucket):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("status must be one of [approved pending rejected]"))
			case errors.Is(err, roster.ErrAuthRequired):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(roster.ErrAuthRequired.Error()))
			case errors.Is(err, roster.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(roster.ErrForbidden.Error()))
			case errors.Is(err, roster.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(roster.ErrEventNotFound.Error()))
			default:
				log.Error("failed to list attendees", sl.Err(err), slog.String("event_id", eventID))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to list attendees"))
			}
			return
		}

		if attendees == nil {
			attendees = []models.Attendee{}
		}

		render.JSON(w, r, AttendeesResponse{
			Response:  response.OK(),
			Attendees: attendees,
		})
	}
}

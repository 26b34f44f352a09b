package getEvent

import (
	"campusHub/internal/blobstore"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BlobLoader
type BlobLoader interface {
	Load(eventID string) ([]byte, error)
}

// New returns the stored document verbatim.
func New(log *slog.Logger, loader BlobLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relay.getEvent.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "eventId")
		if eventID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fail("event_id is required", ""))
			return
		}

		doc, err := loader.Load(eventID)
		if err != nil {
			switch {
			case errors.Is(err, blobstore.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Fail("event not found", eventID))
			case errors.Is(err, blobstore.ErrInvalidID):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Fail("invalid event_id", eventID))
			default:
				log.Error("failed to load event", sl.Err(err), slog.String("event_id", eventID))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Fail("failed to load event", err.Error()))
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
	}
}

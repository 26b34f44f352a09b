package saveEvent

import (
	"campusHub/internal/blobstore"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"encoding/json"
	"errors"
	"github.com/go-chi/render"
	"io"
	"log/slog"
	"net/http"
)

// maxBlobSize caps a saved event document.
const maxBlobSize = 1 << 20

type SaveResponse struct {
	Message string `json:"message"`
	EventID string `json:"event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BlobSaver
type BlobSaver interface {
	Save(eventID string, doc []byte) error
}

// New stores the request body under its event_id field, replacing any
// earlier document for the same event.
func New(log *slog.Logger, saver BlobSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relay.saveEvent.New"

		log := log.With(slog.String("op", op))

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBlobSize+1))
		if err != nil {
			log.Error("failed to read request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fail("failed to read request", err.Error()))
			return
		}

		if len(body) > maxBlobSize {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Fail("event document too large", ""))
			return
		}

		var head struct {
			EventID json.RawMessage `json:"event_id"`
		}
		if err = json.Unmarshal(body, &head); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fail("failed to decode request", err.Error()))
			return
		}

		eventID := idString(head.EventID)
		if eventID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fail("event_id is required", ""))
			return
		}

		if err = saver.Save(eventID, body); err != nil {
			if errors.Is(err, blobstore.ErrInvalidID) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Fail("invalid event_id", eventID))
				return
			}
			log.Error("failed to save event", sl.Err(err), slog.String("event_id", eventID))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("failed to save event", err.Error()))
			return
		}

		log.Info("event saved", slog.String("event_id", eventID))

		render.JSON(w, r, SaveResponse{Message: "Event saved", EventID: eventID})
	}
}

// idString accepts string and numeric ids.
func idString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

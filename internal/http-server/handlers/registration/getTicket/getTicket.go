package getTicket

import (
	"campusHub/internal/lib/api/params"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/registration"
	"campusHub/internal/ticket"
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

type TicketResponse struct {
	response.Response
	Registration *models.Registration `json:"registration"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketGetter
type TicketGetter interface {
	TicketFor(ctx context.Context, sess *session.Session, eventID string) (*models.Registration, error)
}

// New returns the caller's registration with its ticket as a data URL, or
// the bare PNG when the request carries a .png extension.
func New(log *slog.Logger, tickets TicketGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.getTicket.New"

		log := log.With(slog.String("op", op))

		reg, ok := load(w, r, log, tickets)
		if !ok {
			return
		}

		if format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string); format == "png" {
			writePNG(w, r, log, reg)
			return
		}

		render.JSON(w, r, TicketResponse{
			Response:     response.OK(),
			Registration: reg,
		})
	}
}

func writePNG(w http.ResponseWriter, r *http.Request, log *slog.Logger, reg *models.Registration) {
	png, err := ticket.PNGFromDataURL(reg.Ticket)
	if err != nil {
		log.Error("stored ticket is not a png data url", sl.Err(err), slog.String("registration_id", reg.ID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to render ticket"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func load(w http.ResponseWriter, r *http.Request, log *slog.Logger, tickets TicketGetter) (*models.Registration, bool) {
	eventID, err := params.EventID(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return nil, false
	}

	reg, err := tickets.TicketFor(r.Context(), session.FromContext(r.Context()), eventID)
	switch {
	case err == nil:
		return reg, true
	case errors.Is(err, registration.ErrAuthRequired):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(registration.ErrAuthRequired.Error()))
	case errors.Is(err, registration.ErrRegistrationNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(registration.ErrRegistrationNotFound.Error()))
	default:
		log.Error("failed to load ticket", sl.Err(err), slog.String("event_id", eventID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load ticket"))
	}

	return nil, false
}

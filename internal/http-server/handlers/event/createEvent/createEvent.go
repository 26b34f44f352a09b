package createEvent

import (
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type EventRequest struct {
	Name                 string     `json:"name" validate:"required"`
	Description          string     `json:"description"`
	StartsAt             time.Time  `json:"starts_at" validate:"required"`
	Location             string     `json:"location"`
	MaxAttendees         *int       `json:"max_attendees" validate:"omitempty,min=1"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Mode                 string     `json:"registration_mode" validate:"required,oneof=open selective paid"`
	PaymentLink          *string    `json:"payment_link" validate:"omitempty,url"`
	Questions            []string   `json:"questions" validate:"dive,required"`
}

type EventResponse struct {
	response.Response
	EventID string `json:"event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, event *models.Event) (string, error)
}

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		sess := session.FromContext(r.Context())
		if !sess.IsOrganizer() {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("organizer access required"))

			return
		}

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.String("name", req.Name), slog.Int("questions", len(req.Questions)))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if req.RegistrationDeadline != nil && req.RegistrationDeadline.After(req.StartsAt) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("registration deadline must not be after the event starts"))

			return
		}

		event := &models.Event{
			ClubID:               sess.ClubID,
			Name:                 strings.TrimSpace(req.Name),
			Description:          req.Description,
			StartsAt:             req.StartsAt,
			Location:             req.Location,
			MaxAttendees:         req.MaxAttendees,
			RegistrationDeadline: req.RegistrationDeadline,
			Status:               models.EventOpen,
			Mode:                 models.RegistrationMode(req.Mode),
			PaymentLink:          req.PaymentLink,
		}
		for i, prompt := range req.Questions {
			event.Questions = append(event.Questions, models.Question{Prompt: prompt, Position: i})
		}

		eventID, err := creator.CreateEvent(r.Context(), event)
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.String("id", eventID), slog.String("club_id", sess.ClubID))

		responseOK(w, r, eventID)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID string) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventID:  eventID,
	})
}

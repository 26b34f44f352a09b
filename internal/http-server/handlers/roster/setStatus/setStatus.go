package setStatus

import (
	"campusHub/internal/lib/api/params"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/roster"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type StatusResponse struct {
	response.Response
	UserID string                    `json:"user_id"`
	Status models.RegistrationStatus `json:"registration_status"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusSetter
type StatusSetter interface {
	SetStatus(ctx context.Context, sess *session.Session, eventID, userID string, status models.RegistrationStatus) error
}

func New(log *slog.Logger, setter StatusSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.roster.setStatus.New"

		log := log.With(slog.String("op", op))

		eventID, err := params.EventID(r)
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			log.Error("user id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID), slog.String("user_id", userID))

		var req StatusRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		status := models.RegistrationStatus(req.Status)

		err = setter.SetStatus(r.Context(), session.FromContext(r.Context()), eventID, userID, status)
		if err != nil {
			log.Error("failed to set registration status", sl.Err(err))

			switch {
			case errors.Is(err, roster.ErrInvalidStatus):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(roster.ErrInvalidStatus.Error()))
			case errors.Is(err, roster.ErrAuthRequired):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(roster.ErrAuthRequired.Error()))
			case errors.Is(err, roster.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(roster.ErrForbidden.Error()))
			case errors.Is(err, roster.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(roster.ErrEventNotFound.Error()))
			case errors.Is(err, roster.ErrRegistrationNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("no registration found for this user"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to set registration status"))
			}
			return
		}

		log.Info("registration status set", slog.String("status", req.Status))

		responseOK(w, r, userID, status)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, userID string, status models.RegistrationStatus) {
	render.JSON(w, r, StatusResponse{
		Response: response.OK(),
		UserID:   userID,
		Status:   status,
	})
}

package register

import (
	"campusHub/internal/lib/api/params"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/registration"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"io"
	"log/slog"
	"net/http"
)

type RegisterRequest struct {
	Answers      map[string]string `json:"answers"`
	PaymentProof *string           `json:"payment_proof" validate:"omitempty,max=2048"`
}

type RegisterResponse struct {
	response.Response
	RegistrationID string                    `json:"registration_id"`
	Registration   models.RegistrationStatus `json:"registration_status"`
	Ticket         string                    `json:"ticket"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationCreator
type RegistrationCreator interface {
	Register(
		ctx context.Context,
		sess *session.Session,
		eventID string,
		answers map[string]string,
		paymentProof *string,
	) (*models.Registration, error)
}

func New(log *slog.Logger, creator RegistrationCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.register.New"

		log := log.With(slog.String("op", op))

		eventID, err := params.EventID(r)
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var req RegisterRequest

		// An empty body is a registration without answers.
		err = render.DecodeJSON(r.Body, &req)
		if err != nil && !errors.Is(err, io.EOF) {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		reg, err := creator.Register(r.Context(), session.FromContext(r.Context()), eventID, req.Answers, req.PaymentProof)
		if err != nil {
			status, msg := errorStatus(err)
			if status == http.StatusInternalServerError {
				log.Error("failed to register", sl.Err(err))
			} else {
				log.Info("registration rejected", slog.String("reason", msg))
			}
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("registered for event",
			slog.String("registration_id", reg.ID),
			slog.String("status", string(reg.Status)),
		)

		responseOK(w, r, reg)
	}
}

// errorStatus maps a registration failure to a status and a client-safe
// message. Wrapped errors never reach the client.
func errorStatus(err error) (int, string) {
	for _, e := range []struct {
		target error
		status int
	}{
		{registration.ErrAuthRequired, http.StatusUnauthorized},
		{registration.ErrEventNotFound, http.StatusNotFound},
		{registration.ErrProfileIncomplete, http.StatusUnprocessableEntity},
		{registration.ErrUnknownQuestion, http.StatusBadRequest},
		{registration.ErrRegistrationClosed, http.StatusConflict},
		{registration.ErrEventFull, http.StatusConflict},
		{registration.ErrDuplicateRegistration, http.StatusConflict},
	} {
		if errors.Is(err, e.target) {
			return e.status, e.target.Error()
		}
	}

	return http.StatusInternalServerError, "failed to register for event"
}

func responseOK(w http.ResponseWriter, r *http.Request, reg *models.Registration) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, RegisterResponse{
		Response:       response.OK(),
		RegistrationID: reg.ID,
		Registration:   reg.Status,
		Ticket:         reg.Ticket,
	})
}

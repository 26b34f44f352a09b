package send

import (
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/mailer"
	"campusHub/internal/storage"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type SendRequest struct {
	ToUserID string `json:"toUserId" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EmailLookup
type EmailLookup interface {
	GetUserEmail(ctx context.Context, userID string) (string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EmailSender
type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

func New(log *slog.Logger, lookup EmailLookup, sender EmailSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relay.send.New"

		log := log.With(slog.String("op", op))

		var req SendRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Fail("failed to decode request", err.Error()))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Fail("missing required fields", response.ValidationError(validateErr).Error))
				return
			}
		}

		to, err := lookup.GetUserEmail(r.Context(), req.ToUserID)
		if err != nil {
			if errors.Is(err, storage.ErrProfileNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Fail("user email not found", req.ToUserID))
				return
			}
			log.Error("failed to look up email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("failed to look up user email", err.Error()))
			return
		}

		err = sender.Send(r.Context(), mailer.Message{
			To:      to,
			Subject: req.Subject,
			Text:    req.Content,
		})
		if err != nil {
			log.Error("failed to send email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("failed to send email", err.Error()))
			return
		}

		log.Info("email sent", slog.String("user_id", req.ToUserID))

		render.JSON(w, r, MessageResponse{Message: "Email sent"})
	}
}

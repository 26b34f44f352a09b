package sendDirect

import (
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/mailer"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type DirectRequest struct {
	To          string `json:"to" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Content     string `json:"content" validate:"required"`
	HTMLContent string `json:"htmlContent"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EmailSender
type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

func New(log *slog.Logger, sender EmailSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relay.sendDirect.New"

		log := log.With(slog.String("op", op))

		var req DirectRequest

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

		err = sender.Send(r.Context(), mailer.Message{
			To:      req.To,
			Subject: req.Subject,
			Text:    req.Content,
			HTML:    req.HTMLContent,
		})
		if err != nil {
			log.Error("failed to send email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("failed to send email", err.Error()))
			return
		}

		log.Info("direct email sent")

		render.JSON(w, r, MessageResponse{Message: "Email sent"})
	}
}

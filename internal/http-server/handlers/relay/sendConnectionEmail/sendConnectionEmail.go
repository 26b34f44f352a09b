package sendConnectionEmail

import (
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/mailer"
	"campusHub/internal/storage"
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"html"
	"log/slog"
	"net/http"
)

type ConnectionRequest struct {
	User1ID       string `json:"user1_id" validate:"required"`
	User2ID       string `json:"user2_id" validate:"required"`
	User2FullName string `json:"user2_full_name" validate:"required"`
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

const connectionSubject = "You have a new connection on Campus Hub"

// New tells user1 that user2 connected with them.
func New(log *slog.Logger, lookup EmailLookup, sender EmailSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relay.sendConnectionEmail.New"

		log := log.With(slog.String("op", op))

		var req ConnectionRequest

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

		to, err := lookup.GetUserEmail(r.Context(), req.User1ID)
		if err != nil {
			if errors.Is(err, storage.ErrProfileNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Fail("user email not found", req.User1ID))
				return
			}
			log.Error("failed to look up email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("failed to look up user email", err.Error()))
			return
		}

		name := html.EscapeString(req.User2FullName)

		err = sender.Send(r.Context(), mailer.Message{
			To:      to,
			Subject: connectionSubject,
			Text:    fmt.Sprintf("%s connected with you on Campus Hub. Log in to see their profile.", req.User2FullName),
			HTML:    fmt.Sprintf("<p><strong>%s</strong> connected with you on Campus Hub.</p><p>Log in to see their profile.</p>", name),
		})
		if err != nil {
			log.Error("failed to send connection email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("failed to send email", err.Error()))
			return
		}

		log.Info("connection email sent", slog.String("user_id", req.User1ID))

		render.JSON(w, r, MessageResponse{Message: "Connection email sent"})
	}
}

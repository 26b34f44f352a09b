package clubLogin

import (
	"campusHub/internal/clubauth"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/models"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type LoginRequest struct {
	ClubID     string `json:"club_id" validate:"required"`
	AccessCode string `json:"access_code" validate:"required"`
}

type LoginResponse struct {
	response.Response
	Token    string `json:"token"`
	ClubID   string `json:"club_id"`
	ClubName string `json:"club_name"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ClubAuthenticator
type ClubAuthenticator interface {
	Login(ctx context.Context, clubID, accessCode string) (string, *models.Club, error)
}

func New(log *slog.Logger, auth ClubAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.clubLogin.New"

		log := log.With(slog.String("op", op))

		var req LoginRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		token, club, err := auth.Login(r.Context(), req.ClubID, req.AccessCode)
		if err != nil {
			if errors.Is(err, clubauth.ErrInvalidCredentials) {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(clubauth.ErrInvalidCredentials.Error()))
				return
			}

			log.Error("club login failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log in"))
			return
		}

		log.Info("club organizer logged in", slog.String("club_id", club.ID))

		render.JSON(w, r, LoginResponse{
			Response: response.OK(),
			Token:    token,
			ClubID:   club.ID,
			ClubName: club.Name,
		})
	}
}

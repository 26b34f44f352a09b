package scanTicket

import (
	"campusHub/internal/checkin"
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type ScanRequest struct {
	Raw string `json:"raw" validate:"required"`
}

type ScanResponse struct {
	response.Response
	*checkin.Result
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketRedeemer
type TicketRedeemer interface {
	Redeem(ctx context.Context, sess *session.Session, raw string) (*checkin.Result, error)
}

// New checks in the holder of a scanned ticket. Every decoded scan is a 200
// whose outcome says what happened; only auth and store failures are errors.
func New(log *slog.Logger, redeemer TicketRedeemer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.checkin.scanTicket.New"

		log := log.With(slog.String("op", op))

		var req ScanRequest

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

		result, err := redeemer.Redeem(r.Context(), session.FromContext(r.Context()), req.Raw)
		if err != nil {
			switch {
			case errors.Is(err, checkin.ErrAuthRequired):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(checkin.ErrAuthRequired.Error()))
			case errors.Is(err, checkin.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(checkin.ErrForbidden.Error()))
			default:
				log.Error("failed to redeem ticket", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to redeem ticket"))
			}
			return
		}

		log.Info("ticket scanned", slog.String("outcome", string(result.Outcome)))

		render.JSON(w, r, ScanResponse{
			Response: response.OK(),
			Result:   result,
		})
	}
}

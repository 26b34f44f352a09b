package matchItems

import (
	"campusHub/internal/lib/api/response"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lostfound"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type MatchRequest struct {
	Query      []float64             `json:"query" validate:"required,min=1"`
	Candidates []lostfound.Candidate `json:"candidates" validate:"dive"`
	Threshold  float64               `json:"threshold" validate:"gte=0,lte=1"`
}

type MatchResponse struct {
	response.Response
	Matches []lostfound.Match `json:"matches"`
}

// New ranks found items against a lost item's embedding. A zero threshold
// uses the default.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lostfound.matchItems.New"

		log := log.With(slog.String("op", op))

		var req MatchRequest

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
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		matches := lostfound.Rank(req.Query, req.Candidates, req.Threshold)
		if matches == nil {
			matches = []lostfound.Match{}
		}

		log.Debug("items ranked", slog.Int("candidates", len(req.Candidates)), slog.Int("matches", len(matches)))

		render.JSON(w, r, MatchResponse{
			Response: response.OK(),
			Matches:  matches,
		})
	}
}

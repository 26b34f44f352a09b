package params

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingEventID = errors.New("event id is required")
	ErrInvalidEventID = errors.New("invalid event id format")
)

// EventID reads the {id} route parameter, which must be a uuid.
func EventID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", ErrMissingEventID
	}
	if err := uuid.Validate(id); err != nil {
		return "", ErrInvalidEventID
	}
	return id, nil
}

package notify

import (
	"context"
	"errors"
	"testing"

	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/models"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	got []models.Notification
	err error
}

func (s *recordingSink) Publish(_ context.Context, n models.Notification) error {
	s.got = append(s.got, n)
	return s.err
}

func TestDispatcher_ContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	failing := &recordingSink{err: errors.New("broker down")}
	healthy := &recordingSink{}

	d := NewDispatcher(slogdiscard.NewDiscardLogger(), failing, healthy)

	n := models.Notification{Type: models.NotifyTicketRedeemed, EventID: "e1", UserID: "u1"}
	d.Dispatch(context.Background(), n)

	assert.Equal(t, []models.Notification{n}, failing.got)
	assert.Equal(t, []models.Notification{n}, healthy.got)
}

func TestDispatcher_NoSinks(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(slogdiscard.NewDiscardLogger())
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), models.Notification{})
	})
}

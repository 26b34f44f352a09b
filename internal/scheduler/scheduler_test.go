package scheduler

import (
	"testing"
	"time"

	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/scheduler/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidSpec(t *testing.T) {
	t.Parallel()

	_, err := New(slogdiscard.NewDiscardLogger(), mocks.NewStatusRefresher(t), "every five minutes", time.Hour)
	assert.Error(t, err)
}

func TestRefreshStatuses(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	refresher := mocks.NewStatusRefresher(t)
	refresher.On("RefreshEventStatuses", mock.Anything, now, 24*time.Hour).Return(int64(2), int64(1), nil).Once()
	refresher.On("RefreshEventStatuses", mock.Anything, now, 24*time.Hour).Return(int64(0), int64(0), assert.AnError).Once()

	s, err := New(slogdiscard.NewDiscardLogger(), refresher, "0 */5 * * * *", 24*time.Hour)
	require.NoError(t, err)
	s.now = func() time.Time { return now }

	s.RefreshStatuses()
	s.RefreshStatuses()
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	refresher := mocks.NewStatusRefresher(t)
	refresher.On("RefreshEventStatuses", mock.Anything, mock.Anything, time.Hour).Return(int64(0), int64(0), nil).Maybe()

	s, err := New(slogdiscard.NewDiscardLogger(), refresher, "* * * * * *", time.Hour)
	require.NoError(t, err)

	s.Start()
	s.Stop()
}

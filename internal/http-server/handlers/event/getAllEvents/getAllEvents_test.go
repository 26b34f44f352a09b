package getAllEvents

import (
	"campusHub/internal/http-server/handlers/event/getAllEvents/mocks"
	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/models"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAllEventsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testTime := time.Date(2026, 12, 5, 18, 0, 0, 0, time.UTC)
	capacity := 100
	testEvents := []models.Event{
		{
			ID:               "e1",
			ClubID:           "c1",
			Name:             "Hackathon",
			StartsAt:         testTime,
			MaxAttendees:     &capacity,
			CurrentAttendees: 50,
			Status:           models.EventOpen,
			Mode:             models.ModeOpen,
		},
		{
			ID:       "e2",
			ClubID:   "c2",
			Name:     "Robotics Demo",
			StartsAt: testTime.Add(24 * time.Hour),
			Status:   models.EventClosingSoon,
			Mode:     models.ModePaid,
		},
	}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.EventsGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success with events",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("ListEvents", mock.Anything).Return(testEvents, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var response EventsResponse
				err := json.Unmarshal([]byte(body), &response)
				require.NoError(t, err)

				assert.Equal(t, "OK", response.Status)
				assert.Equal(t, "", response.Error)
				require.Len(t, response.Events, 2)
				assert.Equal(t, "e1", response.Events[0].ID)
				assert.Equal(t, 50, response.Events[0].CurrentAttendees)
				assert.Equal(t, "Robotics Demo", response.Events[1].Name)
				assert.Equal(t, models.EventClosingSoon, response.Events[1].Status)
			},
		},
		{
			name: "Success with no events",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("ListEvents", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","events":[]}`,
		},
		{
			name: "Database error",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("ListEvents", mock.Anything).Return(nil, errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get events"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventsGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req, err := http.NewRequest("GET", "/events", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

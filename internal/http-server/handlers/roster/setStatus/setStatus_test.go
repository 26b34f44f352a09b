package setStatus

import (
	"bytes"
	"campusHub/internal/http-server/handlers/roster/setStatus/mocks"
	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/lib/session"
	"campusHub/internal/models"
	"campusHub/internal/roster"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const eventID = "6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"

func TestSetStatusHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	organizer := &session.Session{UserID: "club:c1", ClubID: "c1", Role: session.RoleOrganizer}

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(m *mocks.StatusSetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Accept",
			eventID:     eventID,
			requestBody: `{"status":"accepted"}`,
			mockSetup: func(m *mocks.StatusSetter) {
				m.On("SetStatus", mock.Anything, organizer, eventID, "u1", models.StatusAccepted).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","user_id":"u1","registration_status":"accepted"}`,
		},
		{
			name:        "Reject after accept",
			eventID:     eventID,
			requestBody: `{"status":"rejected"}`,
			mockSetup: func(m *mocks.StatusSetter) {
				m.On("SetStatus", mock.Anything, organizer, eventID, "u1", models.StatusRejected).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","user_id":"u1","registration_status":"rejected"}`,
		},
		{
			name:           "Invalid event ID format",
			eventID:        "invalid",
			requestBody:    `{"status":"accepted"}`,
			mockSetup:      func(m *mocks.StatusSetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:           "Invalid JSON",
			eventID:        eventID,
			requestBody:    `invalid json`,
			mockSetup:      func(m *mocks.StatusSetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing status",
			eventID:        eventID,
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.StatusSetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status is a required field"}`,
		},
		{
			name:           "Unknown status",
			eventID:        eventID,
			requestBody:    `{"status":"approved"}`,
			mockSetup:      func(m *mocks.StatusSetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status must be one of [pending accepted rejected]"}`,
		},
		{
			name:        "No registration",
			eventID:     eventID,
			requestBody: `{"status":"pending"}`,
			mockSetup: func(m *mocks.StatusSetter) {
				m.On("SetStatus", mock.Anything, organizer, eventID, "u1", models.StatusPending).Return(roster.ErrRegistrationNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"no registration found for this user"}`,
		},
		{
			name:        "Other club",
			eventID:     eventID,
			requestBody: `{"status":"pending"}`,
			mockSetup: func(m *mocks.StatusSetter) {
				m.On("SetStatus", mock.Anything, organizer, eventID, "u1", models.StatusPending).Return(roster.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"only the event's club organizers can manage attendees"}`,
		},
		{
			name:        "Internal server error",
			eventID:     eventID,
			requestBody: `{"status":"accepted"}`,
			mockSetup: func(m *mocks.StatusSetter) {
				m.On("SetStatus", mock.Anything, organizer, eventID, "u1", models.StatusAccepted).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to set registration status"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockSetter := mocks.NewStatusSetter(t)
			tc.mockSetup(mockSetter)

			router := chi.NewRouter()
			router.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), organizer)))
				})
			})
			router.Put("/events/{id}/attendees/{userID}/status", New(logger, mockSetter))

			req, err := http.NewRequest("PUT", "/events/"+tc.eventID+"/attendees/u1/status", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestResponseOK(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "/", nil)
	require.NoError(t, err)

	responseOK(rr, req, "u9", models.StatusPending)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK","user_id":"u9","registration_status":"pending"}`, rr.Body.String())
}
